package presentation

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDiff(t *testing.T) {
	before := "# Problems\nSee problem @prob:one.\n"
	after := "# Problems\nSee problem 1.\n"

	out := ansi.Strip(FormatDiff(before, after))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "three diff lines plus trailing empty element")

	assert.Equal(t, "  # Problems", lines[0])
	assert.Equal(t, "- See problem @prob:one.", lines[1])
	assert.Equal(t, "+ See problem 1.", lines[2])
	assert.Equal(t, "", lines[3])
}

func TestFormatDiff_Identical(t *testing.T) {
	text := "no changes here\n"
	assert.Empty(t, FormatDiff(text, text))
}

func TestFormatDiff_AddedLine(t *testing.T) {
	out := ansi.Strip(FormatDiff("alpha\n", "alpha\nbeta\n"))

	assert.Contains(t, out, "  alpha\n")
	assert.Contains(t, out, "+ beta\n")
	assert.NotContains(t, out, "- ", "nothing was removed")
}

func TestFormatDiff_RemovedLine(t *testing.T) {
	out := ansi.Strip(FormatDiff("alpha\nbeta\n", "alpha\n"))

	assert.Contains(t, out, "  alpha\n")
	assert.Contains(t, out, "- beta\n")
	assert.NotContains(t, out, "+ ", "nothing was added")
}

func TestFormatDiff_MultipleHunks(t *testing.T) {
	before := "one\ntwo\nthree\nfour\n"
	after := "one\n2\nthree\n4\n"

	out := ansi.Strip(FormatDiff(before, after))

	assert.Contains(t, out, "- two\n")
	assert.Contains(t, out, "+ 2\n")
	assert.Contains(t, out, "- four\n")
	assert.Contains(t, out, "+ 4\n")
	assert.Contains(t, out, "  three\n")
}
