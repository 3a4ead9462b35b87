package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosirrah/mdx/internal/label"
)

func TestFromRegistry(t *testing.T) {
	reg := label.NewRegistry()
	reg.Declare(label.GroupedKey("prob", "one"))
	reg.Declare(label.GlobalKey("alpha"))
	reg.Declare(label.GroupedKey("prob", "two"))

	dtos := FromRegistry(reg)
	require.Len(t, dtos, 3, "expected one DTO per declaration")

	assert.Equal(t, LabelDTO{Key: "prob:one", Group: "prob", Label: "one", Number: "1"}, dtos[0])
	assert.Equal(t, LabelDTO{Key: "alpha", Label: "alpha", Number: "1"}, dtos[1])
	assert.Equal(t, LabelDTO{Key: "prob:two", Group: "prob", Label: "two", Number: "2"}, dtos[2])
}

func TestFromRegistry_Empty(t *testing.T) {
	dtos := FromRegistry(label.NewRegistry())
	assert.Empty(t, dtos, "empty registry should yield no DTOs")
}

func TestFromKey(t *testing.T) {
	dto := FromKey(label.GroupedKey("fig", "graph"), "4")

	assert.Equal(t, "fig:graph", dto.Key)
	assert.Equal(t, "fig", dto.Group)
	assert.Equal(t, "graph", dto.Label)
	assert.Equal(t, "4", dto.Number)
}
