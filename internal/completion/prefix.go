package completion

import (
	"unicode/utf8"
)

// CommonPrefix returns the longest string that every candidate starts with.
//
// The candidates are folded left to right starting from the first one. As soon
// as either the running prefix or the candidate being folded in is empty the
// result is the empty string, so a single "" anywhere in the list empties the
// whole result. A one-element list yields that element unchanged.
func CommonPrefix(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	prefix := candidates[0]
	for _, candidate := range candidates[1:] {
		if prefix == "" || candidate == "" {
			return ""
		}
		prefix = prefix[:commonLength(prefix, candidate)]
	}

	return prefix
}

// commonLength counts the leading bytes a and b share, shortened so the
// result never ends inside a multi-byte rune.
func commonLength(a, b string) int {
	n := min(len(a), len(b))

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	if i < len(a) {
		for i > 0 && !utf8.RuneStart(a[i]) {
			i--
		}
	}

	return i
}
