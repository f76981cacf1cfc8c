package engine

import (
	"github.com/atinylittleshell/editline/internal/completion"
)

// Buffer manages text content and cursor position for line input.
// Text is stored as runes and the cursor is a rune index.
type Buffer struct {
	// runes stores the text content as a slice of runes
	runes []rune
	// pos is the cursor position (index in runes)
	pos int
}

// Ensure Buffer implements completion.LineEditor.
var _ completion.LineEditor = (*Buffer)(nil)

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		runes: []rune{},
		pos:   0,
	}
}

// NewBufferWithText creates a buffer with initial text and the cursor at the end.
func NewBufferWithText(text string) *Buffer {
	runes := []rune(text)
	return &Buffer{
		runes: runes,
		pos:   len(runes),
	}
}

// Text returns the current text content as a string.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Runes returns a copy of the text content.
func (b *Buffer) Runes() []rune {
	result := make([]rune, len(b.runes))
	copy(result, b.runes)
	return result
}

// Len returns the length of the text in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetText replaces the entire buffer content with new text.
// The cursor is moved to the end of the new text.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(text)
	b.pos = len(b.runes)
}

// SetPos sets the cursor position. If pos is out of bounds,
// it will be clamped to valid range [0, len(runes)].
func (b *Buffer) SetPos(pos int) {
	b.pos = clamp(pos, 0, len(b.runes))
}

// Line implements completion.LineEditor.
func (b *Buffer) Line() (completion.LineSnapshot, bool) {
	return completion.LineSnapshot{Text: b.Text(), Cursor: b.pos}, true
}

// InsertAtCursor implements completion.LineEditor.
func (b *Buffer) InsertAtCursor(text string) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}

	result := make([]rune, len(b.runes)+len(runes))
	copy(result, b.runes[:b.pos])
	copy(result[b.pos:], runes)
	copy(result[b.pos+len(runes):], b.runes[b.pos:])

	b.runes = result
	b.pos += len(runes)
}

// DeleteBeforeCursor implements completion.LineEditor. At most the runes
// between the start of the buffer and the cursor are removed.
func (b *Buffer) DeleteBeforeCursor(n int) {
	n = clamp(n, 0, b.pos)
	if n == 0 {
		return
	}

	result := make([]rune, len(b.runes)-n)
	copy(result, b.runes[:b.pos-n])
	copy(result[b.pos-n:], b.runes[b.pos:])

	b.runes = result
	b.pos -= n
}

// TextBeforeCursor returns the text before the cursor.
func (b *Buffer) TextBeforeCursor() string {
	return string(b.runes[:b.pos])
}

// TextAfterCursor returns the text after the cursor.
func (b *Buffer) TextAfterCursor() string {
	return string(b.runes[b.pos:])
}

// clamp returns value clamped to the range [low, high].
func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
