package invoice

import (
	"context"
	"fmt"
	"log/slog"
)

// TextExtractor turns an image file into text. Implementations return an empty
// string together with any error.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Processor validates every invoice image in a directory, one file at a time
type Processor struct {
	extractor  TextExtractor
	validator  *Validator
	reporter   ResultReporter
	extensions []string
	logger     *slog.Logger
}

// NewProcessor creates a Processor. A nil reporter discards progress and
// empty extensions fall back to DefaultExtensions.
func NewProcessor(extractor TextExtractor, validator *Validator, reporter ResultReporter, extensions []string, logger *slog.Logger) *Processor {
	if reporter == nil {
		reporter = discardReporter{}
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor:  extractor,
		validator:  validator,
		reporter:   reporter,
		extensions: extensions,
		logger:     logger,
	}
}

// Process extracts and validates each whitelisted image in dir.
//
// A missing directory is logged and returned as ErrDirectoryNotFound before any
// file is touched. Per-file failures never stop the run: they are recorded in
// the file's FileResult and processing moves on. Only context cancellation ends
// the loop early, returning the results gathered so far.
func (p *Processor) Process(ctx context.Context, dir string) ([]FileResult, error) {
	source, err := NewLocalSource(dir, p.extensions)
	if err != nil {
		p.logger.Error("Invoice directory unavailable", "dir", dir, "error", err)
		return nil, err
	}

	names, err := source.List()
	if err != nil {
		p.logger.Error("Failed to list invoice directory", "dir", dir, "error", err)
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.processFile(ctx, source, name))
	}

	p.logger.Debug("Processed invoice directory", "dir", dir, "files", len(results))
	return results, nil
}

func (p *Processor) processFile(ctx context.Context, source *LocalSource, name string) FileResult {
	p.reporter.Processing(name)
	logger := p.logger.With("file", name)

	// text is empty on failure, which validates as invalid
	text, err := p.extractor.Extract(ctx, source.Path(name))
	if err != nil {
		text = ""
	}

	result := p.validator.validate(text, logger)
	if !result.Valid() {
		logger.Info("Invoice is invalid", "missing", result.Missing)
	}

	fr := FileResult{
		Name:   name,
		Result: result,
		Err:    err,
	}
	p.reporter.Result(fr)
	return fr
}
