package scanning

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultTesseractPath is where distribution packages install the tesseract binary.
const DefaultTesseractPath = "/usr/bin/tesseract"

// TesseractConfig configures the tesseract command line engine
type TesseractConfig struct {
	Path        string // executable path; empty uses DefaultTesseractPath
	Language    string // default "eng"
	TessdataDir string
	PSM         int // page segmentation mode; 0 leaves the engine default
}

// Tesseract implements the Recognizer interface by running the tesseract executable
type Tesseract struct {
	cfg    TesseractConfig
	runner Runner
}

// NewTesseract creates a new Tesseract Recognizer instance
func NewTesseract(cfg TesseractConfig) (*Tesseract, error) {
	return NewTesseractWithRunner(cfg, execRunner{})
}

// NewTesseractWithRunner creates a Tesseract that runs commands through r
func NewTesseractWithRunner(cfg TesseractConfig, r Runner) (*Tesseract, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultTesseractPath
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM < 0 || cfg.PSM > 13 {
		return nil, fmt.Errorf("invalid page segmentation mode %d", cfg.PSM)
	}
	if r == nil {
		r = execRunner{}
	}
	return &Tesseract{cfg: cfg, runner: r}, nil
}

// RecognizeText writes the image to a temporary file and runs tesseract over it
func (t *Tesseract) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	data, ext, err := tesseractInput(imageData, contentType)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "invoice-ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := t.runner.Run(ctx, t.cfg.Path, t.args(tmp.Name())...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			return "", fmt.Errorf("running tesseract: %w: %s", err, truncate(msg, 512))
		}
		return "", fmt.Errorf("running tesseract: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (t *Tesseract) args(path string) []string {
	args := []string{path, "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return args
}

// Close is a no-op; every call runs its own process
func (t *Tesseract) Close() error {
	return nil
}

// tesseractInput returns the bytes tesseract should read and the file extension to give them.
// Leptonica reads the common raster formats directly; HEIC and PDF are rendered to PNG first.
func tesseractInput(imageData []byte, contentType string) ([]byte, string, error) {
	mimeType := normalizeMimeType(contentType)
	switch {
	case mimeType == "application/pdf", isHEICFormat(imageData), isHEICMimeType(mimeType):
		pngData, _, err := convertToPNG(imageData, mimeType)
		if err != nil {
			return nil, "", err
		}
		return pngData, ".png", nil
	}
	return imageData, extensionFor(mimeType), nil
}
