package label

import "strings"

// Occurrence is one declaration or reference found in a line. Start is
// the byte offset of the sigil, End the offset just past the label
// token, so line[Start:End] is the matched text.
type Occurrence struct {
	Key   Key
	Start int
	End   int
}

// Declarations scans a line for label declarations, leftmost first and
// non-overlapping. At each '@' the grouped form is tried before the
// global one, so "@g:x" is one grouped declaration, never a global "@g"
// followed by ":x". A '@' with no token after it matches nothing.
func Declarations(line string) []Occurrence {
	return scan(line, '@', false)
}

// References scans a line for label references with the same precedence
// rules as Declarations. A '#' at byte position 0 never starts a
// reference: such a line is a heading marker.
func References(line string) []Occurrence {
	return scan(line, '#', true)
}

func scan(line string, sigil byte, skipLineStart bool) []Occurrence {
	var occs []Occurrence
	for i := 0; i < len(line); i++ {
		if line[i] != sigil {
			continue
		}
		if skipLineStart && i == 0 {
			continue
		}
		key, end, ok := matchAt(line, i)
		if !ok {
			continue
		}
		occs = append(occs, Occurrence{Key: key, Start: i, End: end})
		i = end - 1
	}
	return occs
}

// matchAt parses the form starting at the sigil position. The grouped
// form needs a token, a ':', and a second token; if the part after the
// ':' is missing the match falls back to the global form, leaving the
// ':' as literal text ("@foo:" declares global "foo").
func matchAt(line string, pos int) (Key, int, bool) {
	start := pos + 1
	end := readToken(line, start)
	if end == start {
		return Key{}, 0, false
	}
	if end < len(line) && line[end] == ':' {
		end2 := readToken(line, end+1)
		if end2 > end+1 {
			return GroupedKey(line[start:end], line[end+1:end2]), end2, true
		}
	}
	return GlobalKey(line[start:end]), end, true
}

// readToken advances past token characters and returns the end offset.
func readToken(s string, pos int) int {
	for pos < len(s) && isTokenChar(s[pos]) {
		pos++
	}
	return pos
}

// isTokenChar reports whether c may appear in a group or label token.
func isTokenChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// IsTableRow reports whether a line is a markdown table row: after
// trimming whitespace it starts and ends with '|' and has at least one
// non-whitespace character between the outer bars.
func IsTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return false
	}
	return strings.TrimSpace(trimmed[1:len(trimmed)-1]) != ""
}
