//go:build gosseract

package scanning

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract implements the Recognizer interface with libtesseract linked in-process.
// Build with -tags gosseract; requires cgo and the tesseract/leptonica headers.
type Gosseract struct {
	cfg TesseractConfig
}

// NewGosseract creates a new in-process tesseract Recognizer
func NewGosseract(cfg TesseractConfig) (*Gosseract, error) {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM < 0 || cfg.PSM > 13 {
		return nil, fmt.Errorf("invalid page segmentation mode %d", cfg.PSM)
	}
	return &Gosseract{cfg: cfg}, nil
}

// RecognizeText runs libtesseract over the image using a fresh client per call
func (g *Gosseract) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pngData, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return "", err
	}

	c := gosseract.NewClient()
	defer c.Close()

	if g.cfg.TessdataDir != "" {
		if err := c.SetTessdataPrefix(g.cfg.TessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	if err := c.SetLanguage(g.cfg.Language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if g.cfg.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(g.cfg.PSM)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}
	if err := c.SetImageFromBytes(pngData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close is a no-op; clients are per call
func (g *Gosseract) Close() error {
	return nil
}
