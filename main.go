package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/advisorkit/cas-parser/internal/api"
	"github.com/advisorkit/cas-parser/internal/casparser"
	"github.com/advisorkit/cas-parser/internal/config"
	"github.com/advisorkit/cas-parser/internal/diag"
	"github.com/advisorkit/cas-parser/internal/export"
)

func main() {
	passwordFlag := flag.String("password", "", "CAS PDF password (PAN-derived passwords are retried case-insensitively)")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with .json extension)")
	prettyFlag := flag.Bool("pretty", true, "Indent the JSON output")
	csvFlag := flag.Bool("csv", false, "Also write a flat holdings CSV next to the JSON output")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	addrFlag := flag.String("addr", "", "Listen address for -serve (overrides CAS_ADDR)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `CAS Statement Parser

Extracts a normalized portfolio snapshot from CDSL and NSDL consolidated
account statement PDFs (CAMS/KFintech detected with reduced extraction).

Usage:
  cas-parser [flags] <statement.pdf> [statement2.pdf ...]
  cas-parser -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Parse a password-protected CAS to JSON
  cas-parser -password=ABCDE1234F statement.pdf

  # Custom output path plus holdings CSV
  cas-parser -password=ABCDE1234F -output=portfolio.json -csv statement.pdf

  # Run the upload API
  cas-parser -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("cas-parser v%s\n", casparser.ParserVersion)
		os.Exit(0)
	}

	if *serveFlag {
		runServer(*addrFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := casparser.New(diag.NewSlog(logger))

	for _, inputPath := range flag.Args() {
		if err := processFile(svc, inputPath, *passwordFlag, *outputFlag, *prettyFlag, *csvFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(svc *casparser.Service, inputPath, password, outputPath string, pretty, withCSV bool) error {
	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	st, err := svc.ParseFile(inputPath, password)
	if err != nil {
		return err
	}

	fmt.Printf("  Format: %s\n", strings.ToUpper(string(st.Meta.Format)))
	fmt.Printf("  Demat accounts: %d, MF folios: %d, policies: %d\n",
		len(st.DematAccounts), len(st.MutualFunds), len(st.Insurance.Policies))
	fmt.Printf("  Portfolio value: %.2f\n", st.Summary.TotalValue)
	if st.Investor.Name != "" {
		fmt.Printf("  Investor: %s\n", st.Investor.Name)
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
	}
	if err := export.WriteJSONFile(outPath, st, pretty); err != nil {
		return fmt.Errorf("JSON write failed: %w", err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	if withCSV {
		csvPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".csv"
		w := &export.CSVWriter{IncludeHeader: true}
		if err := w.WriteToFile(csvPath, st); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  Holdings CSV: %s\n", csvPath)
	}

	fmt.Println("  Done.")
	return nil
}

func runServer(addrOverride string) {
	cfg := config.Load()
	if addrOverride != "" {
		cfg.Addr = addrOverride
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	svc := casparser.New(diag.NewSlog(logger))
	handler := api.NewHandler(svc, cfg.MaxUploadMB)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB << 20,
	})
	handler.Register(app)

	logger.Info("starting CAS parser API", "addr", cfg.Addr, "max_upload_mb", cfg.MaxUploadMB)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
