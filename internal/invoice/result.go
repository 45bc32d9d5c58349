package invoice

import (
	"fmt"
	"strings"
)

// Status is the overall outcome of validating one invoice
type Status string

const (
	StatusValid   Status = "Valid"
	StatusInvalid Status = "Invalid data"
)

// Field names a value the validator looks for
type Field string

const (
	FieldInvoiceNumber Field = "invoice_number"
	FieldInvoiceDate   Field = "invoice_date"
)

// Result is the validation outcome for one piece of extracted text.
// InvoiceNumber and InvoiceDate are only set when Status is StatusValid.
type Result struct {
	Status        Status  `json:"status"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	InvoiceDate   string  `json:"invoice_date,omitempty"`
	Missing       []Field `json:"missing,omitempty"`
}

// Valid reports whether both fields were found
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

func (r Result) String() string {
	if !r.Valid() {
		return fmt.Sprintf("{status: %s}", StatusInvalid)
	}
	return fmt.Sprintf("{status: %s, invoice_number: %s, invoice_date: %s}", r.Status, r.InvoiceNumber, r.InvoiceDate)
}

// FileResult pairs a processed file with its outcome.
// Err is the extraction error, if any; the Result is still populated.
type FileResult struct {
	Name   string `json:"name"`
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

func (f FileResult) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(f.Result.String())
	return b.String()
}
