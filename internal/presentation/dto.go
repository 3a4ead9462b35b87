// Package presentation converts processing results into CLI output:
// label listings as JSON or aligned tables, and line diffs for --diff.
package presentation

import (
	"github.com/dosirrah/mdx/internal/label"
)

// LabelDTO represents one assigned label for presentation.
type LabelDTO struct {
	Key    string `json:"key"`
	Group  string `json:"group,omitempty"`
	Label  string `json:"label"`
	Number string `json:"number"`
}

// FromKey converts a label key and its assigned number to a DTO.
func FromKey(key label.Key, number string) LabelDTO {
	return LabelDTO{
		Key:    key.String(),
		Group:  key.Group,
		Label:  key.Label,
		Number: number,
	}
}

// FromRegistry converts every assignment in the registry to DTOs,
// preserving declaration order.
func FromRegistry(reg *label.Registry) []LabelDTO {
	keys := reg.Keys()
	dtos := make([]LabelDTO, 0, len(keys))
	for _, k := range keys {
		num, ok := reg.Resolve(k)
		if !ok {
			continue
		}
		dtos = append(dtos, FromKey(k, num))
	}
	return dtos
}
