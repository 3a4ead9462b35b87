package presentation

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatDiff renders a line-level diff between two renditions of a
// document. Added lines are prefixed "+ " and styled green, removed
// lines "- " and red; unchanged lines keep a two-character margin so
// the columns stay aligned. Identical inputs yield the empty string.
func FormatDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	beforeRunes, afterRunes, lineIndex := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeRunes, afterRunes, false), lineIndex)

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range chunkLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				sb.WriteString(additionStyle.Render("+ " + line))
			case diffmatchpatch.DiffDelete:
				sb.WriteString(deletionStyle.Render("- " + line))
			default:
				sb.WriteString("  " + line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// chunkLines splits a diff chunk into lines, dropping the empty
// remainder a trailing newline leaves behind.
func chunkLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
