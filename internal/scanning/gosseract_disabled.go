//go:build !gosseract

package scanning

import "errors"

// ErrGosseractUnavailable is returned when the binary was built without -tags gosseract
var ErrGosseractUnavailable = errors.New("gosseract engine not compiled in; rebuild with -tags gosseract")

// NewGosseract reports that the in-process engine is unavailable in this build
func NewGosseract(cfg TesseractConfig) (Recognizer, error) {
	return nil, ErrGosseractUnavailable
}
