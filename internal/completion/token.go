package completion

import (
	"unicode"
)

// Token is the run of non-whitespace characters that ends at the cursor.
// Offsets and lengths are counted in runes.
type Token struct {
	// Text is the token content.
	Text string
	// Length is the number of runes in Text.
	Length int
	// Start is the offset of the first rune of the token; Start+Length is the cursor.
	Start int
}

// ExtractToken returns the token that ends at cursor in line. The scan walks
// backwards from the rune before the cursor and stops at the first whitespace
// rune or at the start of the line. A cursor at the start of the line, or one
// that lies outside the line, yields an empty token.
func ExtractToken(line string, cursor int) Token {
	runes := []rune(line)
	if cursor <= 0 || cursor > len(runes) {
		return Token{Start: cursor}
	}

	start := cursor
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}

	return Token{
		Text:   string(runes[start:cursor]),
		Length: cursor - start,
		Start:  start,
	}
}
