// Package document adapts on-disk document containers (plain markdown,
// Jupyter and Databricks notebooks) to the line-oriented processor and
// back. Each format has a loader that produces units of newline-exclusive
// lines and a writer that restores the container's shape.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat rejects inputs whose extension maps to no adapter.
var ErrUnsupportedFormat = errors.New("unsupported file format: use .mdx, .ipynb, or .source")

// Format tags the document container variant.
type Format int

const (
	FormatUnknown Format = iota
	FormatMarkdown
	FormatNotebook
	FormatSource
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatNotebook:
		return "notebook"
	case FormatSource:
		return "source"
	default:
		return "unknown"
	}
}

// DetectFormat selects the adapter from the input path's extension,
// compared case-insensitively.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mdx":
		return FormatMarkdown, nil
	case ".ipynb":
		return FormatNotebook, nil
	case ".source":
		return FormatSource, nil
	default:
		return FormatUnknown, ErrUnsupportedFormat
	}
}

// DefaultOutputPath derives the output path used when the caller gives
// none: plain markdown swaps the extension for .md, notebooks get a
// _processed suffix with the original extension preserved.
func DefaultOutputPath(path string, format Format) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if format == FormatMarkdown {
		return base + ".md"
	}
	return base + "_processed" + ext
}

// ValidateOutputPath rejects output paths whose extension does not fit
// the input format. It runs before any processing starts so a bad pair
// never half-processes a document.
func ValidateOutputPath(output string, format Format) error {
	ext := strings.ToLower(filepath.Ext(output))
	switch format {
	case FormatMarkdown:
		if ext != ".md" {
			return errors.New("output file must have a .md extension")
		}
	case FormatNotebook:
		if ext != ".ipynb" {
			return fmt.Errorf("output file %s must match input file type: it must have a .ipynb extension", output)
		}
	case FormatSource:
		if ext != ".source" {
			return fmt.Errorf("output file %s must match input file type: it must have a .source extension", output)
		}
	default:
		return ErrUnsupportedFormat
	}
	return nil
}
