package document

import (
	"context"
	"os"
	"strings"

	"github.com/dosirrah/mdx/internal/processor"
	"github.com/dosirrah/mdx/internal/tracing"
)

// Markdown is the plain-text adapter. The whole file is one unit of
// newline-exclusive lines.
type Markdown struct {
	lines    []string
	trailing bool
}

// ParseMarkdown splits text into lines, normalizing CRLF endings and
// remembering whether the text ended with a newline so Text can restore
// it.
func ParseMarkdown(text string) *Markdown {
	lines, trailing := SplitLines(text)
	return &Markdown{lines: lines, trailing: trailing}
}

// LoadMarkdown reads a plain markdown file from disk.
func LoadMarkdown(path string) (*Markdown, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(string(data)), nil
}

// Lines returns the current lines without their newlines.
func (d *Markdown) Lines() []string {
	return d.lines
}

// Transform resolves labels and references in place. A plain file is a
// single unit, so both passes run back to back here.
func (d *Markdown) Transform(ctx context.Context, p *processor.Processor) error {
	_, collectSpan := startSpan(ctx, tracing.SpanPassCollect)
	p.CollectLabels(d.lines)
	endSpan(collectSpan, nil)

	_, subSpan := startSpan(ctx, tracing.SpanPassSubstitute)
	d.lines = p.Substitute(d.lines)
	err := p.Err()
	endSpan(subSpan, err)
	return err
}

// Prepend inserts a line at the top of the document.
func (d *Markdown) Prepend(line string) {
	d.lines = append([]string{line}, d.lines...)
}

// Text reassembles the document.
func (d *Markdown) Text() string {
	return JoinLines(d.lines, d.trailing)
}

// Save writes the document to path.
func (d *Markdown) Save(path string) error {
	return os.WriteFile(path, []byte(d.Text()), 0644) //nolint:gosec // G306: processed markdown is not sensitive
}

// SplitLines cuts text into newline-exclusive lines. The second return
// reports whether the text ended with a newline. CRLF endings are
// normalized to LF.
func SplitLines(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = strings.TrimSuffix(text, "\n")
	}
	return strings.Split(text, "\n"), trailing
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	text := strings.Join(lines, "\n")
	if trailingNewline {
		text += "\n"
	}
	return text
}
