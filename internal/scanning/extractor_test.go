package scanning

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockRecognizer is a mock implementation of Recognizer
type mockRecognizer struct {
	text        string
	err         error
	panicWith   any
	calls       int
	lastData    []byte
	contentType string
}

func (m *mockRecognizer) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	m.calls++
	m.lastData = imageData
	m.contentType = contentType
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockRecognizer) Close() error {
	return nil
}

var _ = Describe("Extractor", func() {
	var (
		tmpDir     string
		path       string
		recognizer *mockRecognizer
		extractor  *Extractor
		text       string
		err        error
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		path = filepath.Join(tmpDir, "invoice.png")
		Expect(os.WriteFile(path, []byte("fake png bytes"), 0644)).To(Succeed())

		recognizer = &mockRecognizer{text: "Invoice Number: 42"}
		extractor = NewExtractor(recognizer, nil)
	})

	JustBeforeEach(func() {
		text, err = extractor.Extract(context.Background(), path)
	})

	When("the engine recognizes text", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the engine's text", func() {
			Expect(text).To(Equal("Invoice Number: 42"))
		})

		It("passes the file contents to the engine", func() {
			Expect(string(recognizer.lastData)).To(Equal("fake png bytes"))
		})

		It("derives the content type from the extension", func() {
			Expect(recognizer.contentType).To(Equal("image/png"))
		})
	})

	When("the file does not exist", func() {
		BeforeEach(func() {
			path = filepath.Join(tmpDir, "missing.png")
		})

		It("returns an extraction error", func() {
			Expect(err).To(MatchError(ErrExtraction))
		})

		It("returns empty text", func() {
			Expect(text).To(BeEmpty())
		})

		It("never calls the engine", func() {
			Expect(recognizer.calls).To(Equal(0))
		})
	})

	When("the file is empty", func() {
		BeforeEach(func() {
			Expect(os.WriteFile(path, nil, 0644)).To(Succeed())
		})

		It("returns an extraction error", func() {
			Expect(err).To(MatchError(ErrExtraction))
			Expect(err.Error()).To(ContainSubstring("file is empty"))
		})
	})

	When("the path is a directory", func() {
		BeforeEach(func() {
			path = filepath.Join(tmpDir, "folder.png")
			Expect(os.Mkdir(path, 0755)).To(Succeed())
		})

		It("returns an extraction error", func() {
			Expect(err).To(MatchError(ErrExtraction))
			Expect(text).To(BeEmpty())
		})
	})

	When("the engine fails", func() {
		var engineErr = errors.New("engine exploded")

		BeforeEach(func() {
			recognizer.err = engineErr
		})

		It("wraps both the sentinel and the engine error", func() {
			Expect(err).To(MatchError(ErrExtraction))
			Expect(errors.Is(err, engineErr)).To(BeTrue())
		})

		It("names the failing path", func() {
			Expect(err.Error()).To(ContainSubstring(path))
		})

		It("returns empty text", func() {
			Expect(text).To(BeEmpty())
		})
	})

	When("the engine panics", func() {
		BeforeEach(func() {
			recognizer.panicWith = "segfault in native code"
		})

		It("recovers and returns an extraction error", func() {
			Expect(err).To(MatchError(ErrExtraction))
			Expect(err.Error()).To(ContainSubstring("segfault in native code"))
		})

		It("returns empty text", func() {
			Expect(text).To(BeEmpty())
		})
	})
})

var _ = Describe("ContentTypeFor", func() {
	DescribeTable("maps invoice extensions",
		func(name string, expected string) {
			Expect(ContentTypeFor(name, nil)).To(Equal(expected))
		},
		Entry("png", "a.png", "image/png"),
		Entry("jpg", "a.jpg", "image/jpeg"),
		Entry("jpeg", "a.jpeg", "image/jpeg"),
		Entry("tiff", "a.tiff", "image/tiff"),
		Entry("bmp", "a.bmp", "image/bmp"),
		Entry("gif", "a.gif", "image/gif"),
		Entry("upper case", "A.PNG", "image/png"),
	)

	It("sniffs unknown extensions", func() {
		Expect(ContentTypeFor("scan.dat", []byte("%PDF-1.7\n"))).To(Equal("application/pdf"))
	})
})
