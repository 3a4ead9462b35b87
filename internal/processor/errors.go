package processor

import (
	"fmt"
	"strings"

	"github.com/dosirrah/mdx/internal/label"
)

// Unresolved records one reference that resolved to no declared label:
// its key and the document-global line number where it appeared.
type Unresolved struct {
	Line int
	Key  label.Key
}

// UndefinedReferenceError reports every unresolved reference in a
// document. It is produced once, after the whole substitution pass, so
// the user can fix all offenders in a single edit instead of rerunning
// per failure.
type UndefinedReferenceError struct {
	References []Unresolved
}

func (e *UndefinedReferenceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d undefined references found:", len(e.References))
	for _, r := range e.References {
		fmt.Fprintf(&b, "\n  - undefined reference '%s' on line %d", r.Key, r.Line)
	}
	return b.String()
}
