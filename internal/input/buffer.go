// Package input implements the single-line text buffer used to compose chat
// messages.
//
// The buffer stores UTF-8 text and addresses it with a cursor counted in runes,
// never bytes. Every edit translates the rune cursor into a byte boundary first,
// so multi-byte characters are never split. The cursor is kept inside
// [0, RuneCount()] by clamping; no operation can fail.
package input

import (
	"strings"
	"unicode/utf8"
)

// Buffer is a cursor-addressed UTF-8 string. The zero value is an empty buffer
// with the cursor at 0.
type Buffer struct {
	text   string
	cursor int // in runes
}

// String returns the composed text.
func (b *Buffer) String() string {
	return b.text
}

// Cursor returns the cursor position in runes.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// RuneCount returns the text length in runes.
func (b *Buffer) RuneCount() int {
	return utf8.RuneCountInString(b.text)
}

// Len returns the text length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsBlank reports whether the buffer holds nothing but whitespace.
func (b *Buffer) IsBlank() bool {
	return strings.TrimSpace(b.text) == ""
}

// Insert splices r at the cursor and advances the cursor by one rune.
func (b *Buffer) Insert(r rune) {
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	at := b.ByteOffset()
	b.text = b.text[:at] + string(r) + b.text[at:]
	b.cursor++
}

// InsertString inserts every rune of s at the cursor, leaving the cursor after
// the last one. Invalid bytes become U+FFFD.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.Insert(r)
	}
}

// MoveLeft moves the cursor one rune left. No-op at the start.
func (b *Buffer) MoveLeft() {
	b.SetCursor(b.cursor - 1)
}

// MoveRight moves the cursor one rune right. No-op at the end.
func (b *Buffer) MoveRight() {
	b.SetCursor(b.cursor + 1)
}

// MoveHome puts the cursor before the first rune.
func (b *Buffer) MoveHome() {
	b.cursor = 0
}

// MoveEnd puts the cursor after the last rune.
func (b *Buffer) MoveEnd() {
	b.cursor = b.RuneCount()
}

// SetCursor moves the cursor to pos, clamped to [0, RuneCount()].
func (b *Buffer) SetCursor(pos int) {
	b.cursor = clamp(pos, 0, b.RuneCount())
}

// DeleteBefore removes the rune immediately before the cursor and moves the
// cursor back by one. No-op when the cursor is at 0.
func (b *Buffer) DeleteBefore() {
	if b.cursor <= 0 {
		return
	}
	start := b.byteOffsetOf(b.cursor - 1)
	end := b.ByteOffset()
	b.text = b.text[:start] + b.text[end:]
	b.cursor--
}

// DeleteAt removes the rune under the cursor. No-op at the end of the text.
func (b *Buffer) DeleteAt() {
	start := b.ByteOffset()
	if start >= len(b.text) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.text[start:])
	b.text = b.text[:start] + b.text[start+size:]
}

// ByteOffset returns the byte offset matching the rune cursor. A cursor past
// the end maps to the total byte length.
func (b *Buffer) ByteOffset() int {
	return b.byteOffsetOf(b.cursor)
}

// Clear empties the buffer and resets the cursor.
func (b *Buffer) Clear() {
	b.text = ""
	b.cursor = 0
}

// Split returns the text before the cursor, the rune under it (empty at the
// end) and the remainder.
func (b *Buffer) Split() (before, at, after string) {
	off := b.ByteOffset()
	before = b.text[:off]
	if off >= len(b.text) {
		return before, "", ""
	}
	_, size := utf8.DecodeRuneInString(b.text[off:])
	return before, b.text[off : off+size], b.text[off+size:]
}

func (b *Buffer) byteOffsetOf(idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	for i := range b.text {
		if n == idx {
			return i
		}
		n++
	}
	return len(b.text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
