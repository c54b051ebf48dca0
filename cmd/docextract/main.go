package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/registry"
)

// docextract runs the field extractor for one document type over a text
// file and prints the result as JSON. Useful for tuning extractors against
// saved OCR output without touching S3 or Textract.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "docextract <doc-type> <text-file>", "doc_types", constants.DocumentTypeStrings())
		os.Exit(2)
	}
	dt, ok := constants.ParseDocumentType(os.Args[1])
	if !ok {
		logger.Error("unknown document type", "arg", os.Args[1], "doc_types", constants.DocumentTypeStrings())
		os.Exit(2)
	}
	raw, err := os.ReadFile(os.Args[2])
	if err != nil {
		logger.Error("reading text file", "path", os.Args[2], "error", err)
		os.Exit(1)
	}

	start := time.Now()
	fields, err := registry.Extract(dt, string(raw))
	if err != nil {
		logger.Error("extraction failed", "doc_type", dt, "error", err)
		os.Exit(1)
	}
	if err := registry.ValidateFields(dt, fields); err != nil {
		logger.Error("extracted fields failed schema validation", "doc_type", dt, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		logger.Error("encoding fields", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	logger.Info("extraction OK",
		"doc_type", dt,
		"bytes", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
