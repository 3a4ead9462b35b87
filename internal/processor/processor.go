// Package processor implements the two-pass label and reference
// resolution over document line sequences. Pass one collects every
// declaration into a registry; pass two substitutes declarations and
// references with their assigned numbers, padding inside table rows so
// column alignment survives.
package processor

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dosirrah/mdx/internal/label"
)

// Processor resolves labels and references across one document. It is
// not safe for concurrent use; one instance handles one document per
// run. Reset (or a fresh instance) is required before reusing it on
// another document.
type Processor struct {
	registry *label.Registry
	diag     io.Writer
	lineNum  int
	missing  []Unresolved
}

// New creates a processor. Each unresolved reference found during
// substitution is reported on diag the moment it is discovered; pass
// nil to discard the warnings.
func New(diag io.Writer) *Processor {
	if diag == nil {
		diag = io.Discard
	}
	return &Processor{
		registry: label.NewRegistry(),
		diag:     diag,
	}
}

// Reset clears the registry, the line counter, and any recorded
// unresolved references, readying the processor for a new document.
func (p *Processor) Reset() {
	p.registry.Reset()
	p.lineNum = 0
	p.missing = nil
}

// Registry exposes the label registry for read-only inspection after
// collection.
func (p *Processor) Registry() *label.Registry {
	return p.registry
}

// CollectLabels runs the first pass over one unit's lines: every
// declaration is assigned a number, leftmost first with grouped forms
// taking precedence. The lines are not modified. For multi-unit
// documents, collect every unit before substituting any of them, so
// references can target labels declared in later units.
func (p *Processor) CollectLabels(lines []string) {
	for _, line := range lines {
		for _, occ := range label.Declarations(line) {
			p.registry.Declare(occ.Key)
		}
	}
}

// Substitute runs the second pass over one unit's lines and returns the
// transformed lines. The line counter keeps counting across calls
// (document-global numbering for diagnostics) and unresolved references
// accumulate until Err or Reset. Substitute never mutates the registry.
func (p *Processor) Substitute(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		p.lineNum++

		insideTable := label.IsTableRow(line)
		line = p.replaceDeclarations(line, insideTable)
		line = p.replaceReferences(line, insideTable)

		out = append(out, line)
	}
	return out
}

// Process runs both passes over a single-unit document and returns the
// transformed lines, or the aggregated error when any reference is
// undefined.
func (p *Processor) Process(lines []string) ([]string, error) {
	p.CollectLabels(lines)
	out := p.Substitute(lines)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Unresolved returns the references that failed to resolve so far, in
// discovery order.
func (p *Processor) Unresolved() []Unresolved {
	return slices.Clone(p.missing)
}

// Err returns nil when every reference resolved, or an
// *UndefinedReferenceError carrying the complete offender list.
func (p *Processor) Err() error {
	if len(p.missing) == 0 {
		return nil
	}
	return &UndefinedReferenceError{References: slices.Clone(p.missing)}
}

// LineCount returns how many lines the substitution pass has consumed.
func (p *Processor) LineCount() int {
	return p.lineNum
}

func (p *Processor) replaceDeclarations(line string, insideTable bool) string {
	occs := label.Declarations(line)
	if len(occs) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, occ := range occs {
		b.WriteString(line[last:occ.Start])
		// Pass one saw this exact text, so the key is assigned unless
		// Substitute ran without CollectLabels; then the text stays.
		if num, ok := p.registry.Resolve(occ.Key); ok {
			b.WriteString(pad(num, line[occ.Start:occ.End], insideTable))
		} else {
			b.WriteString(line[occ.Start:occ.End])
		}
		last = occ.End
	}
	b.WriteString(line[last:])
	return b.String()
}

func (p *Processor) replaceReferences(line string, insideTable bool) string {
	occs := label.References(line)
	if len(occs) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, occ := range occs {
		b.WriteString(line[last:occ.Start])
		if num, ok := p.registry.Resolve(occ.Key); ok {
			b.WriteString(pad(num, line[occ.Start:occ.End], insideTable))
		} else {
			fmt.Fprintf(p.diag, "Warning: Undefined reference '%s' on line %d\n", occ.Key, p.lineNum)
			p.missing = append(p.missing, Unresolved{Line: p.lineNum, Key: occ.Key})
			b.WriteString(line[occ.Start:occ.End])
		}
		last = occ.End
	}
	b.WriteString(line[last:])
	return b.String()
}

// pad left-justifies a replacement inside table rows: trailing spaces
// bring the number up to the printed width of the text it replaces, so
// the row's columns stay aligned. Outside tables the bare number is
// substituted.
func pad(num, matched string, insideTable bool) string {
	if !insideTable {
		return num
	}
	if n := runewidth.StringWidth(matched) - runewidth.StringWidth(num); n > 0 {
		return num + strings.Repeat(" ", n)
	}
	return num
}
