package invoice

import (
	"fmt"
	"io"
)

// ResultReporter receives progress and results while a directory is processed
type ResultReporter interface {
	// Processing is called before a file is extracted
	Processing(name string)
	// Result is called once a file has been validated
	Result(r FileResult)
}

// ConsoleReporter writes human readable lines
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to w
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// Processing prints a progress line for the file about to be read
func (c *ConsoleReporter) Processing(name string) {
	fmt.Fprintf(c.w, "Processing file: %s\n", name)
}

// Result prints the file name paired with its validation result
func (c *ConsoleReporter) Result(r FileResult) {
	fmt.Fprintln(c.w, r.String())
}

type discardReporter struct{}

func (discardReporter) Processing(string) {}
func (discardReporter) Result(FileResult) {}
