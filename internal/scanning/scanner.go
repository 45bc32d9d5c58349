package scanning

import (
	"context"
	"errors"
)

// ErrExtraction marks any failure to turn an image into text.
var ErrExtraction = errors.New("text extraction failed")

// Recognizer defines the interface for OCR engines
type Recognizer interface {
	// RecognizeText returns the plain text found in an image
	RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close closes the engine and releases resources
	Close() error
}
