package document

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosirrah/mdx/internal/label"
	"github.com/dosirrah/mdx/internal/processor"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPipeline_RunMarkdown(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.mdx")
	output := filepath.Join(dir, "notes.md")
	writeFile(t, input, "Problem @prob:one.\nSee #prob:one.\n")

	pl := NewPipeline(Config{})
	err := pl.Run(context.Background(), FormatMarkdown, input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Problem 1.\nSee 1.\n", string(data))
}

func TestPipeline_RunMarkdownWithBanner(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.mdx")
	output := filepath.Join(dir, "notes.md")
	writeFile(t, input, "Problem @prob:one.\n")

	pl := NewPipeline(Config{Banner: true})
	err := pl.Run(context.Background(), FormatMarkdown, input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<!-- Generated by mdx from "+input+". -->\nProblem 1.\n", string(data))
}

func TestPipeline_RunUndefinedReferenceWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.mdx")
	output := filepath.Join(dir, "notes.md")
	writeFile(t, input, "Problem @prob:one.\nSee #prob:two.\n")

	var diag bytes.Buffer
	pl := NewPipeline(Config{Diagnostics: &diag})
	err := pl.Run(context.Background(), FormatMarkdown, input, output)

	var undefErr *processor.UndefinedReferenceError
	require.ErrorAs(t, err, &undefErr)
	assert.Equal(t, "Warning: Undefined reference 'prob:two' on line 2\n", diag.String())

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output should be written on unresolved references")
}

func TestPipeline_RunNotebook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.ipynb")
	output := filepath.Join(dir, "exam_processed.ipynb")
	writeFile(t, input, `{
  "cells": [
    {"cell_type": "markdown", "source": ["Problem @prob:one.\n", "See #prob:one."]},
    {"cell_type": "code", "source": ["print('hi')\n"]}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 2
}`)

	pl := NewPipeline(Config{})
	err := pl.Run(context.Background(), FormatNotebook, input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []any{"Problem 1.\n", "See 1."}, cellSource(t, data, 0))

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.Equal(t, float64(4), root["nbformat"])
}

func TestPipeline_RunSource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.source")
	output := filepath.Join(dir, "exam_processed.source")
	writeFile(t, input, `{
  "cells": [
    {"cell_type": "markdown", "source": "Problem @prob:one.\nSee #prob:one."}
  ]
}`)

	pl := NewPipeline(Config{})
	err := pl.Run(context.Background(), FormatSource, input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Problem 1.\nSee 1.", cellSource(t, data, 0))
}

func TestPipeline_RunMissingInput(t *testing.T) {
	dir := t.TempDir()
	pl := NewPipeline(Config{})

	err := pl.Run(context.Background(), FormatMarkdown, filepath.Join(dir, "absent.mdx"), filepath.Join(dir, "out.md"))
	require.Error(t, err)
}

func TestPipeline_Preview(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.mdx")
	writeFile(t, input, "Problem @prob:one.\nSee #prob:one.\n")

	pl := NewPipeline(Config{})
	before, after, err := pl.Preview(context.Background(), FormatMarkdown, input)
	require.NoError(t, err)

	assert.Equal(t, "Problem @prob:one.\nSee #prob:one.\n", before)
	assert.Equal(t, "Problem 1.\nSee 1.\n", after)
}

func TestPipeline_PreviewNotebookNormalizesJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.ipynb")
	writeFile(t, input, `{"cells": [{"cell_type": "markdown", "source": ["@a:x and #a:x"]}]}`)

	pl := NewPipeline(Config{})
	before, after, err := pl.Preview(context.Background(), FormatNotebook, input)
	require.NoError(t, err)

	assert.Contains(t, before, "@a:x and #a:x")
	assert.Contains(t, after, "1 and 1")
	assert.NotEqual(t, before, after)
}

func TestPipeline_Collect(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.mdx")
	writeFile(t, input, "@prob:one\n@fig:one\n@alpha\n#prob:one\n")

	pl := NewPipeline(Config{})
	reg, err := pl.Collect(context.Background(), FormatMarkdown, input)
	require.NoError(t, err)

	assert.Equal(t, []label.Key{
		label.GroupedKey("prob", "one"),
		label.GroupedKey("fig", "one"),
		label.GlobalKey("alpha"),
	}, reg.Keys(), "references do not register labels")

	num, ok := reg.Resolve(label.GroupedKey("prob", "one"))
	require.True(t, ok)
	assert.Equal(t, "1", num)
}

func TestPipeline_CollectNotebook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "exam.ipynb")
	writeFile(t, input, `{
  "cells": [
    {"cell_type": "markdown", "source": ["@sec:one\n", "#sec:later"]},
    {"cell_type": "markdown", "source": ["@sec:later"]}
  ]
}`)

	pl := NewPipeline(Config{})
	reg, err := pl.Collect(context.Background(), FormatNotebook, input)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
}
