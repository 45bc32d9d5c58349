package scanning

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Extractor turns invoice image files into text with a Recognizer.
//
// Extract never panics and always returns a string. On failure the string is
// empty and the error wraps ErrExtraction, so callers that only care about the
// text can ignore the error and still tell "no text" from "engine failure"
// when they need to.
type Extractor struct {
	recognizer Recognizer
	logger     *slog.Logger
}

// NewExtractor creates an Extractor backed by r
func NewExtractor(r Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{recognizer: r, logger: logger}
}

// Extract reads the image at path and returns the recognized text
func (e *Extractor) Extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: ocr engine panic: %v", ErrExtraction, path, r)
		}
		if err != nil {
			text = ""
			e.logger.Error("Failed to extract text", "path", path, "error", err)
		}
	}()

	data, err := readImage(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	text, err = e.recognizer.RecognizeText(ctx, data, ContentTypeFor(path, data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, path, err)
	}

	e.logger.Debug("Extracted text", "path", path, "chars", len(text))
	return text, nil
}

// readImage loads the whole file; the handle is closed before returning
func readImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("reading image %s: file is empty", path)
	}
	return data, nil
}
