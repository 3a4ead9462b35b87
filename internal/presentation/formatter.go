package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true)

// Formatter handles output formatting for label listings.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatLabelsJSON formats a list of labels as indented JSON.
func (f *Formatter) FormatLabelsJSON(labels []LabelDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(labels)
}

// FormatLabelTable formats labels as an aligned table with a bold
// header. Column widths follow display width so wide runes line up.
func (f *Formatter) FormatLabelTable(labels []LabelDTO) error {
	if len(labels) == 0 {
		_, err := fmt.Fprintln(f.writer, "no labels defined")
		return err
	}

	keyWidth := runewidth.StringWidth("KEY")
	groupWidth := runewidth.StringWidth("GROUP")
	for _, l := range labels {
		if w := runewidth.StringWidth(l.Key); w > keyWidth {
			keyWidth = w
		}
		if w := runewidth.StringWidth(l.Group); w > groupWidth {
			groupWidth = w
		}
	}

	header := fmt.Sprintf("%s  %s  %s",
		runewidth.FillRight("KEY", keyWidth),
		runewidth.FillRight("GROUP", groupWidth),
		"NUMBER")
	if _, err := fmt.Fprintln(f.writer, tableHeaderStyle.Render(header)); err != nil {
		return err
	}

	for _, l := range labels {
		_, err := fmt.Fprintf(f.writer, "%s  %s  %s\n",
			runewidth.FillRight(l.Key, keyWidth),
			runewidth.FillRight(l.Group, groupWidth),
			l.Number)
		if err != nil {
			return err
		}
	}
	return nil
}
