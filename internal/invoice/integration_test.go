package invoice_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/invoice-check/internal/invoice"
	"github.com/zombor/invoice-check/internal/scanning"
)

// echoRunner pretends to be tesseract: the "image" files in these tests hold
// their own transcript, which is echoed back as stdout.
type echoRunner struct {
	commands []string
}

func (e *echoRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	e.commands = append(e.commands, name)
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, []byte(err.Error()), err
	}
	if bytes.HasPrefix(data, []byte("CORRUPT")) {
		return nil, []byte("Error in pixReadStream: Unknown format"), errors.New("exit status 1")
	}
	return data, nil, nil
}

var _ = Describe("Integration", func() {
	var (
		dir       string
		runner    *echoRunner
		out       *bytes.Buffer
		processor *invoice.Processor
		results   []invoice.FileResult
		err       error
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		runner = &echoRunner{}
		out = &bytes.Buffer{}

		engine, tErr := scanning.NewTesseractWithRunner(scanning.TesseractConfig{Path: "/opt/ocr/tesseract"}, runner)
		Expect(tErr).NotTo(HaveOccurred())

		validator, vErr := invoice.NewValidator(invoice.DefaultConfig(), nil)
		Expect(vErr).NotTo(HaveOccurred())

		processor = invoice.NewProcessor(
			scanning.NewExtractor(engine, nil),
			validator,
			invoice.NewConsoleReporter(out),
			nil,
			nil,
		)

		files := map[string]string{
			"invoice1.png":  "ACME\nInvoice Number: 12345\nDate: 01/02/2024\n",
			"invoice2.jpg":  "ACME\nInvoice Number: 999\n",
			"invoice3.tiff": "CORRUPT",
			"invoice4.gif":  "",
			"notes.txt":     "Invoice Number: 1\nDate: 01/01/2020",
		}
		for name, content := range files {
			Expect(os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)).To(Succeed())
		}
	})

	JustBeforeEach(func() {
		results, err = processor.Process(context.Background(), dir)
	})

	It("should not return an error", func() {
		Expect(err).NotTo(HaveOccurred())
	})

	It("processes every image and skips other files", func() {
		Expect(results).To(HaveLen(4))
	})

	It("only calls OCR for readable images", func() {
		// invoice4.gif is empty and fails before the engine runs
		Expect(runner.commands).To(HaveLen(3))
		Expect(runner.commands).To(HaveEach("/opt/ocr/tesseract"))
	})

	It("distinguishes engine failures from missing labels", func() {
		Expect(results[1].Err).NotTo(HaveOccurred())
		Expect(results[2].Err).To(MatchError(scanning.ErrExtraction))
		Expect(results[3].Err).To(MatchError(scanning.ErrExtraction))
	})

	It("prints a progress line and a result line per image", func() {
		Expect(out.String()).To(Equal(
			"Processing file: invoice1.png\n" +
				"invoice1.png: {status: Valid, invoice_number: 12345, invoice_date: 01/02/2024}\n" +
				"Processing file: invoice2.jpg\n" +
				"invoice2.jpg: {status: Invalid data}\n" +
				"Processing file: invoice3.tiff\n" +
				"invoice3.tiff: {status: Invalid data}\n" +
				"Processing file: invoice4.gif\n" +
				"invoice4.gif: {status: Invalid data}\n",
		))
	})
})
