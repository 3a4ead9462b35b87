package cmd

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "exam.mdx", "# Exam\n\n@prob:one is the first problem.\nSee #prob:one for details.\n")

	stdout, _, err := executeCommand(t, "preview", "exam.mdx", "--style", "notty", "--width", "60")
	require.NoError(t, err)

	stripped := ansi.Strip(stdout)
	assert.Contains(t, stripped, "Exam")
	assert.Contains(t, stripped, "1 is the first problem.")
	assert.Contains(t, stripped, "See 1 for details.")
	assert.NotContains(t, stripped, "@prob:one", "declarations should be resolved before rendering")
}

func TestPreviewCommand_RejectsNotebook(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := executeCommand(t, "preview", "exam.ipynb")
	require.EqualError(t, err, "preview supports plain text documents only, not notebook")
}

func TestPreviewCommand_UndefinedReference(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "exam.mdx", "See #ghost.\n")

	_, stderr, err := executeCommand(t, "preview", "exam.mdx")
	require.Error(t, err)
	assert.Contains(t, stderr, "Warning: Undefined reference 'ghost' on line 1")
}

func TestPreviewCommand_DoesNotWriteOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, "exam.mdx", "@alpha\n")

	_, _, err := executeCommand(t, "preview", "exam.mdx", "--style", "notty")
	require.NoError(t, err)

	assert.NoFileExists(t, "exam.md")
}
