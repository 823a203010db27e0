package textedit

import "unicode/utf8"

// Buffer is an editable line of text with a cursor and an optional
// selection. The cursor and all indices count Unicode code points,
// never bytes; byte offsets are derived only at slice time.
//
// The selection is kept as an anchor plus a signed extent so it can be
// grown in either direction from the same anchor. The covered range is
// recomputed from those two values on every access.
type Buffer struct {
	content   string
	cursor    int
	selecting bool
	anchor    int
	extent    int
}

func NewBuffer(content string) *Buffer {
	b := &Buffer{content: content}
	b.cursor = b.Len()
	return b
}

func (b *Buffer) Content() string { return b.content }

// Len returns the content length in code points.
func (b *Buffer) Len() int { return utf8.RuneCountInString(b.content) }

func (b *Buffer) Cursor() int { return b.cursor }

// SetContent replaces the content and parks the cursor at the end.
func (b *Buffer) SetContent(s string) {
	b.content = s
	b.cursor = b.Len()
	b.clearSelection()
}

// Selection returns the selected range [start, end) in code points.
// ok is false when there is no selection or it is empty.
func (b *Buffer) Selection() (start, end int, ok bool) {
	if !b.selecting || b.extent == 0 {
		return 0, 0, false
	}
	a, c := b.anchor, b.anchor+b.extent
	if a <= c {
		return a, c, true
	}
	return c, a, true
}

func (b *Buffer) clearSelection() {
	b.selecting = false
	b.anchor = 0
	b.extent = 0
}

// InsertRune inserts r at the cursor, replacing the selection if one
// is active.
func (b *Buffer) InsertRune(r rune) {
	if start, end, ok := b.Selection(); ok {
		b.deleteRange(start, end)
		b.cursor = start
	}
	b.clearSelection()

	rs := []rune(b.content)
	b.clampCursor(len(rs))
	out := make([]rune, 0, len(rs)+1)
	out = append(out, rs[:b.cursor]...)
	out = append(out, r)
	out = append(out, rs[b.cursor:]...)
	b.content = string(out)
	b.cursor++
}

// InsertString inserts each rune of s in turn.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.InsertRune(r)
	}
}

// DeleteBackward removes the selection if active, otherwise the
// character before the cursor. No-op at the start with no selection.
func (b *Buffer) DeleteBackward() {
	if start, end, ok := b.Selection(); ok {
		b.deleteRange(start, end)
		b.cursor = start
		b.clearSelection()
		return
	}
	b.clearSelection()
	if b.cursor == 0 {
		return
	}
	b.deleteRange(b.cursor-1, b.cursor)
	b.cursor--
}

func (b *Buffer) deleteRange(start, end int) {
	rs := []rune(b.content)
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if start >= end {
		return
	}
	b.content = string(rs[:start]) + string(rs[end:])
}

// MoveLeft collapses an active selection to its start, otherwise moves
// the cursor one character left.
func (b *Buffer) MoveLeft() {
	if start, _, ok := b.Selection(); ok {
		b.cursor = start
		b.clearSelection()
		return
	}
	b.clearSelection()
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight collapses an active selection to its end, otherwise moves
// the cursor one character right.
func (b *Buffer) MoveRight() {
	if _, end, ok := b.Selection(); ok {
		b.cursor = end
		b.clearSelection()
		return
	}
	b.clearSelection()
	if b.cursor < b.Len() {
		b.cursor++
	}
}

// ExtendLeft grows or shrinks the selection one character to the left.
// The first extend anchors the selection at the cursor.
func (b *Buffer) ExtendLeft() { b.extend(-1) }

// ExtendRight grows or shrinks the selection one character to the right.
func (b *Buffer) ExtendRight() { b.extend(1) }

func (b *Buffer) extend(dir int) {
	if !b.selecting {
		b.selecting = true
		b.anchor = b.cursor
		b.extent = 0
	}
	b.cursor += dir
	b.clampCursor(b.Len())
	b.extent = b.cursor - b.anchor
}

// SelectAll selects the whole content and moves the cursor to the start.
func (b *Buffer) SelectAll() {
	b.selecting = true
	b.anchor = 0
	b.extent = b.Len()
	b.cursor = 0
}

// MoveStart jumps to the beginning, dropping any selection.
func (b *Buffer) MoveStart() {
	b.clearSelection()
	b.cursor = 0
}

// MoveEnd jumps to the end, dropping any selection.
func (b *Buffer) MoveEnd() {
	b.clearSelection()
	b.cursor = b.Len()
}

func (b *Buffer) clampCursor(n int) {
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > n {
		b.cursor = n
	}
}
