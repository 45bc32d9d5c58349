package invoice

import "strings"

// DefaultExtensions is the image whitelist. Matching is a case-sensitive suffix check.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".gif"}

// DefaultDirectory is where invoices are read from when nothing else is configured
const DefaultDirectory = "./invoices"

// Config holds the patterns and file filter used for a run
type Config struct {
	InvoiceNumberPattern string
	DatePattern          string
	Extensions           []string
}

// DefaultConfig returns the stock patterns and image whitelist
func DefaultConfig() Config {
	return Config{
		InvoiceNumberPattern: DefaultInvoiceNumberPattern,
		DatePattern:          DefaultDatePattern,
		Extensions:           append([]string(nil), DefaultExtensions...),
	}
}

// ParseExtensions splits a comma separated list such as ".png,.jpg".
// A missing leading dot is added; case is preserved.
func ParseExtensions(list string) []string {
	var exts []string
	for _, e := range strings.Split(list, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
