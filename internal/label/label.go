// Package label implements the lexical forms and the numbering registry
// for mdx labels: declarations (@group:name, @name) and references
// (#group:name, #name).
package label

// Key identifies a label. Grouped labels carry a group name; global
// labels have an empty group. A grouped "x" and a global "x" are
// distinct keys.
type Key struct {
	Group string
	Label string
}

// GlobalKey returns the key for a bare label.
func GlobalKey(label string) Key {
	return Key{Label: label}
}

// GroupedKey returns the key for a group-scoped label.
func GroupedKey(group, label string) Key {
	return Key{Group: group, Label: label}
}

// IsGrouped reports whether the key belongs to a named group.
func (k Key) IsGrouped() bool {
	return k.Group != ""
}

// String returns the canonical form: "group:label" for grouped keys,
// "label" for global ones.
func (k Key) String() string {
	if k.Group != "" {
		return k.Group + ":" + k.Label
	}
	return k.Label
}
