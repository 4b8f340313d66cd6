// Package buffer implements the editable text buffer of the input method.
//
// A Buffer is a value: text plus a selection, measured in runes. All
// operations are pure functions returning a new Buffer, so the keystroke
// engine can compute edits without touching the UI's own text field.
//
// Positions follow the usual text-field convention. A selection [Start, End]
// with Start == End is a plain cursor. The documented precondition is
// 0 ≤ Start ≤ End ≤ Len(); out-of-range positions are clamped rather than
// rejected, so no function in this package fails.
package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Selection is a range of rune positions. Start == End denotes a cursor.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection is a plain cursor.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Buffer is an immutable snapshot of a text field.
type Buffer struct {
	Text string
	Sel  Selection
}

// New returns a buffer holding text with the cursor at its end.
func New(text string) Buffer {
	n := utf8.RuneCountInString(text)
	return Buffer{Text: text, Sel: Selection{Start: n, End: n}}
}

// Len returns the length of the text in runes.
func (b Buffer) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// Runes returns the text as a fresh rune slice.
func (b Buffer) Runes() []rune {
	return []rune(b.Text)
}

// Cursor returns the insertion point: the end of the selection.
func (b Buffer) Cursor() int {
	return b.normalized().Sel.End
}

// Start returns the start of the selection, where inserted text begins.
func (b Buffer) Start() int {
	return b.normalized().Sel.Start
}

// Selected returns the selected text, or "" for a plain cursor.
func (b Buffer) Selected() string {
	b = b.normalized()
	if b.Sel.Empty() {
		return ""
	}
	return string(b.Runes()[b.Sel.Start:b.Sel.End])
}

func (b Buffer) String() string {
	return fmt.Sprintf("%q[%d:%d]", b.Text, b.Sel.Start, b.Sel.End)
}

// Select returns b with the selection set to [start, end]. Positions are
// clamped to the text and swapped if given in reverse.
func Select(b Buffer, start, end int) Buffer {
	b.Sel = Selection{Start: start, End: end}
	return b.normalized()
}

// MoveTo returns b with a collapsed cursor at pos (clamped).
func MoveTo(b Buffer, pos int) Buffer {
	return Select(b, pos, pos)
}

// Insert replaces the selection (if any) with text and leaves the cursor
// immediately after the inserted text.
func Insert(b Buffer, text string) Buffer {
	b = b.normalized()
	runes := b.Runes()
	ins := []rune(text)
	out := make([]rune, 0, len(runes)-(b.Sel.End-b.Sel.Start)+len(ins))
	out = append(out, runes[:b.Sel.Start]...)
	out = append(out, ins...)
	out = append(out, runes[b.Sel.End:]...)
	cursor := b.Sel.Start + len(ins)
	return Buffer{Text: string(out), Sel: Selection{Start: cursor, End: cursor}}
}

// DeleteBackward deletes the selection if it is non-empty. Otherwise it
// deletes n runes before the cursor, fewer if the cursor is closer to the
// start. The cursor ends up at the deletion point.
func DeleteBackward(b Buffer, n int) Buffer {
	b = b.normalized()
	start, end := b.Sel.Start, b.Sel.End
	if b.Sel.Empty() {
		if n <= 0 {
			return b
		}
		start = max(0, end-n)
	}
	runes := b.Runes()
	out := make([]rune, 0, len(runes)-(end-start))
	out = append(out, runes[:start]...)
	out = append(out, runes[end:]...)
	return Buffer{Text: string(out), Sel: Selection{Start: start, End: start}}
}

// Clear returns an empty buffer.
func Clear() Buffer {
	return Buffer{}
}

// normalized enforces 0 ≤ Start ≤ End ≤ Len().
func (b Buffer) normalized() Buffer {
	n := b.Len()
	s, e := clamp(b.Sel.Start, n), clamp(b.Sel.End, n)
	if s > e {
		s, e = e, s
	}
	b.Sel = Selection{Start: s, End: e}
	return b
}

func clamp(pos, n int) int {
	return min(max(pos, 0), n)
}
