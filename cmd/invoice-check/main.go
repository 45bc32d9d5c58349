package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/invoice-check/internal/invoice"
	"github.com/zombor/invoice-check/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("invoice-check")
	var (
		dir           = fs.StringLong("dir", invoice.DefaultDirectory, "Directory containing invoice images")
		extensions    = fs.StringLong("ext", strings.Join(invoice.DefaultExtensions, ","), "Comma separated image extensions to process (case-sensitive)")
		numberPattern = fs.StringLong("invoice-number-pattern", invoice.DefaultInvoiceNumberPattern, "Regular expression capturing the invoice number")
		datePattern   = fs.StringLong("date-pattern", invoice.DefaultDatePattern, "Regular expression capturing the invoice date")
		engine        = fs.StringLong("engine", "tesseract", "OCR engine: 'tesseract', 'gemini', 'ollama' or 'gosseract'")
		tessPath      = fs.StringLong("tesseract-path", scanning.DefaultTesseractPath, "Path to the tesseract executable")
		tessLang      = fs.StringLong("tesseract-lang", "eng", "Tesseract language(s), e.g. eng or eng+deu")
		tessdataDir   = fs.StringLong("tessdata-dir", "", "Tesseract tessdata directory (optional)")
		psm           = fs.IntLong("psm", 0, "Tesseract page segmentation mode (0 = engine default)")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl, minicpm-v)")
		logLevel      = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_CHECK"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := invoice.Config{
		InvoiceNumberPattern: *numberPattern,
		DatePattern:          *datePattern,
		Extensions:           invoice.ParseExtensions(*extensions),
	}
	validator, err := invoice.NewValidator(cfg, logger)
	if err != nil {
		slog.Error("Invalid validation patterns", "error", err)
		os.Exit(1)
	}

	tessCfg := scanning.TesseractConfig{
		Path:        *tessPath,
		Language:    *tessLang,
		TessdataDir: *tessdataDir,
		PSM:         *psm,
	}

	// Initialize recognizer based on engine
	var recognizer scanning.Recognizer
	switch *engine {
	case "tesseract":
		slog.Debug("Initializing tesseract...", "path", tessCfg.Path, "lang", tessCfg.Language)
		recognizer, err = scanning.NewTesseract(tessCfg)
	case "gosseract":
		slog.Debug("Initializing gosseract...", "lang", tessCfg.Language)
		recognizer, err = scanning.NewGosseract(tessCfg)
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Debug("Initializing Gemini...", "model", *geminiModel)
		recognizer, err = scanning.NewGemini(apiKey, *geminiModel)
	case "ollama":
		slog.Debug("Initializing Ollama...", "url", *ollamaURL, "model", *ollamaModel)
		recognizer, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
	default:
		slog.Error("Invalid OCR engine", "engine", *engine, "valid", "tesseract, gemini, ollama or gosseract")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize OCR engine", "engine", *engine, "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()

	extractor := scanning.NewExtractor(recognizer, logger)
	processor := invoice.NewProcessor(extractor, validator, invoice.NewConsoleReporter(os.Stdout), cfg.Extensions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Per-file failures and a missing directory are reported but still exit 0
	if _, err := processor.Process(ctx, *dir); err != nil && !errors.Is(err, invoice.ErrDirectoryNotFound) {
		slog.Warn("Processing stopped", "error", err)
	}
}
