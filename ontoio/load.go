package ontoio

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format names an input syntax.
type Format string

const (
	FormatAuto Format = "auto"
	FormatOBO  Format = "obo"
	FormatOWL  Format = "owl"
)

// DetectFormat returns explicit unless it is FormatAuto, in which case the
// format is guessed from the file extension. It returns "" when no guess
// is possible.
func DetectFormat(path string, explicit Format) Format {
	if explicit != FormatAuto && explicit != "" {
		return explicit
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obo":
		return FormatOBO
	case ".owl", ".xml", ".rdf":
		return FormatOWL
	}
	return ""
}

// Parse reads a Document in the given format.
func Parse(r io.Reader, format Format) (*Document, error) {
	switch format {
	case FormatOBO:
		return ParseOBO(r)
	case FormatOWL:
		return ParseOWL(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// LoadFile parses and converts the ontology file at path.
func LoadFile(path string, format Format) (*Conversion, error) {
	f := DetectFormat(path, format)
	if f == "" {
		return nil, fmt.Errorf("cannot detect format for %q; set the format explicitly", path)
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	start := time.Now()
	doc, err := Parse(in, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	conv := doc.Convert()
	slog.Info("loaded ontology file",
		slog.String("file", filepath.Base(path)),
		slog.String("format", string(f)),
		slog.Int("terms", len(conv.Terms)),
		slog.Int("relationships", len(conv.Relationships)),
		slog.Int("warnings", len(conv.Warnings)),
		slog.Duration("elapsed", time.Since(start)),
	)
	for _, w := range conv.Warnings {
		slog.Debug("conversion warning", slog.String("error", w.Error()))
	}
	return conv, nil
}
