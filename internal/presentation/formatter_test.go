package presentation

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_FormatLabelsJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatLabelsJSON([]LabelDTO{
		{Key: "prob:one", Group: "prob", Label: "one", Number: "1"},
		{Key: "alpha", Label: "alpha", Number: "1"},
	})
	require.NoError(t, err)

	want := `[
  {
    "key": "prob:one",
    "group": "prob",
    "label": "one",
    "number": "1"
  },
  {
    "key": "alpha",
    "label": "alpha",
    "number": "1"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestFormatter_FormatLabelsJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatLabelsJSON([]LabelDTO{})
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatter_FormatLabelTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatLabelTable([]LabelDTO{
		{Key: "prob:one", Group: "prob", Label: "one", Number: "1"},
		{Key: "alpha", Label: "alpha", Number: "2"},
	})
	require.NoError(t, err)

	want := "KEY       GROUP  NUMBER\n" +
		"prob:one  prob   1\n" +
		"alpha            2\n"
	assert.Equal(t, want, ansi.Strip(buf.String()))
}

func TestFormatter_FormatLabelTable_WidensToLongestKey(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatLabelTable([]LabelDTO{
		{Key: "chapter:introduction", Group: "chapter", Label: "introduction", Number: "1"},
		{Key: "x", Label: "x", Number: "1"},
	})
	require.NoError(t, err)

	want := "KEY                   GROUP    NUMBER\n" +
		"chapter:introduction  chapter  1\n" +
		"x                              1\n"
	assert.Equal(t, want, ansi.Strip(buf.String()))
}

func TestFormatter_FormatLabelTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	err := f.FormatLabelTable(nil)
	require.NoError(t, err)
	assert.Equal(t, "no labels defined\n", buf.String())
}
