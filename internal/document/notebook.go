package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dosirrah/mdx/internal/processor"
	"github.com/dosirrah/mdx/internal/tracing"
)

// Notebook is the JSON-container adapter shared by Jupyter (.ipynb) and
// Databricks (.source) notebooks. Only markdown cells are fed to the
// processor; everything else in the container rides along untouched.
//
// The format tag selects the cell source codec: FormatNotebook stores a
// cell's source as a list of newline-terminated strings, FormatSource as
// a single string with embedded newlines.
type Notebook struct {
	root   map[string]any
	cells  []any
	format Format
}

// ParseNotebook decodes a notebook container.
func ParseNotebook(data []byte, format Format) (*Notebook, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	var cells []any
	if raw, present := root["cells"]; present {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("notebook cells field is not a list")
		}
		cells = list
	}

	return &Notebook{root: root, cells: cells, format: format}, nil
}

// LoadNotebook reads and decodes a notebook file.
func LoadNotebook(path string, format Format) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	nb, err := ParseNotebook(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return nb, nil
}

// Units reports how many markdown cells the container holds.
func (n *Notebook) Units() int {
	count := 0
	for _, cell := range n.cells {
		if _, ok := markdownCell(cell); ok {
			count++
		}
	}
	return count
}

// Collect runs the first pass over every markdown cell. Collecting the
// whole container before substituting any cell is what lets a reference
// in an early cell target a label declared in a later one.
func (n *Notebook) Collect(p *processor.Processor) error {
	for i, cell := range n.cells {
		src, ok := markdownCell(cell)
		if !ok {
			continue
		}
		lines, err := n.cellLines(i, src)
		if err != nil {
			return err
		}
		p.CollectLabels(lines)
	}
	return nil
}

// Transform resolves labels and references across all markdown cells:
// collection over the whole container first, then substitution cell by
// cell. The processor's line counter spans cells, so diagnostics carry
// document-global line numbers.
func (n *Notebook) Transform(ctx context.Context, p *processor.Processor) error {
	_, collectSpan := startSpan(ctx, tracing.SpanPassCollect)
	err := n.Collect(p)
	endSpan(collectSpan, err)
	if err != nil {
		return err
	}

	_, subSpan := startSpan(ctx, tracing.SpanPassSubstitute)
	for i, cell := range n.cells {
		src, ok := markdownCell(cell)
		if !ok {
			continue
		}
		lines, err := n.cellLines(i, src)
		if err != nil {
			endSpan(subSpan, err)
			return err
		}
		n.setCellLines(src, p.Substitute(lines))
	}
	err = p.Err()
	endSpan(subSpan, err)
	return err
}

// Bytes re-serializes the container with two-space indentation.
func (n *Notebook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the container to path.
func (n *Notebook) Save(path string) error {
	data, err := n.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644) //nolint:gosec // G306: processed notebooks are not sensitive
}

// markdownCell returns the cell as a map when it is a markdown cell.
func markdownCell(cell any) (map[string]any, bool) {
	m, ok := cell.(map[string]any)
	if !ok {
		return nil, false
	}
	if t, _ := m["cell_type"].(string); t != "markdown" {
		return nil, false
	}
	return m, true
}

// cellLines decodes one markdown cell's source through the format's
// codec. A source with the wrong shape for the format is a structural
// error naming the cell.
func (n *Notebook) cellLines(i int, cell map[string]any) ([]string, error) {
	if n.format == FormatNotebook {
		raw, ok := cell["source"].([]any)
		if !ok {
			return nil, fmt.Errorf("cell %d: source is not a list of strings", i)
		}
		lines := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("cell %d: source is not a list of strings", i)
			}
			lines = append(lines, strings.TrimSuffix(s, "\n"))
		}
		return lines, nil
	}

	s, ok := cell["source"].(string)
	if !ok {
		return nil, fmt.Errorf("cell %d: source is not a string", i)
	}
	return splitCellSource(s), nil
}

// setCellLines writes processed lines back in the format's shape: the
// list codec newline-terminates every line but the last, the string
// codec joins with bare newlines.
func (n *Notebook) setCellLines(cell map[string]any, lines []string) {
	if n.format == FormatNotebook {
		src := make([]any, len(lines))
		for i, line := range lines {
			if i < len(lines)-1 {
				line += "\n"
			}
			src[i] = line
		}
		cell["source"] = src
		return
	}
	cell["source"] = strings.Join(lines, "\n")
}

// splitCellSource splits a single-string source into lines: one trailing
// empty segment is dropped and a \r suffix per line is stripped, so CRLF
// content round-trips as LF.
func splitCellSource(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	return parts
}
