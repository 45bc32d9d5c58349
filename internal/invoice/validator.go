package invoice

import (
	"fmt"
	"log/slog"
	"regexp"
)

const (
	// DefaultInvoiceNumberPattern matches "Invoice Number:" and captures the digits after it
	DefaultInvoiceNumberPattern = `Invoice Number: ?(\d+)`
	// DefaultDatePattern matches "Date:" and captures a DD/MM/YYYY date
	DefaultDatePattern = `Date: ?(\d{2}/\d{2}/\d{4})`
)

// Validator checks extracted invoice text for the required fields
type Validator struct {
	invoiceNumber *regexp.Regexp
	date          *regexp.Regexp
	logger        *slog.Logger
}

// NewValidator compiles the patterns in cfg. Each pattern needs exactly one
// capture group holding the value to report.
func NewValidator(cfg Config, logger *slog.Logger) (*Validator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	numberPattern := cfg.InvoiceNumberPattern
	if numberPattern == "" {
		numberPattern = DefaultInvoiceNumberPattern
	}
	datePattern := cfg.DatePattern
	if datePattern == "" {
		datePattern = DefaultDatePattern
	}

	invoiceNumber, err := compileField(FieldInvoiceNumber, numberPattern)
	if err != nil {
		return nil, err
	}
	date, err := compileField(FieldInvoiceDate, datePattern)
	if err != nil {
		return nil, err
	}

	return &Validator{
		invoiceNumber: invoiceNumber,
		date:          date,
		logger:        logger,
	}, nil
}

func compileField(field Field, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling %s pattern: %w", field, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%s pattern %q must have exactly one capture group, has %d", field, pattern, re.NumSubexp())
	}
	return re, nil
}

// Validate searches text for an invoice number and a date.
// Both must be present for the result to be valid; partial matches are discarded.
func (v *Validator) Validate(text string) Result {
	return v.validate(text, v.logger)
}

// validate logs missing-field diagnostics to logger, which callers may scope to a file
func (v *Validator) validate(text string, logger *slog.Logger) Result {
	var missing []Field

	number, ok := find(v.invoiceNumber, text)
	if !ok {
		logger.Warn("Invoice number not found")
		missing = append(missing, FieldInvoiceNumber)
	}

	date, ok := find(v.date, text)
	if !ok {
		logger.Warn("Date not found")
		missing = append(missing, FieldInvoiceDate)
	}

	if len(missing) > 0 {
		return Result{Status: StatusInvalid, Missing: missing}
	}

	return Result{
		Status:        StatusValid,
		InvoiceNumber: number,
		InvoiceDate:   date,
	}
}

func find(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
