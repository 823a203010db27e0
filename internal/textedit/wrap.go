package textedit

// Word wrapping for the entry popups. Wrap produces a row-by-row token
// layout; the same layout answers both "what text goes on each visual
// row" and "which row/column does cursor index i land on", so the wrap
// decision is made exactly once per keystroke.

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenSpace
	// tokenOverflow is a zero-width placeholder left behind on a row
	// when the word being built was pushed to the next row. One
	// placeholder per pushed character keeps the per-row counts
	// consistent with what is displayed.
	tokenOverflow
)

type token struct {
	kind tokenKind
	text string
}

type row struct {
	tokens []token
	start  int // logical index of the first character displayed on this row
}

// visible returns the number of displayed characters on the row.
// Overflow placeholders count zero.
func (r row) visible() int {
	n := 0
	for _, t := range r.tokens {
		switch t.kind {
		case tokenWord:
			n += len([]rune(t.text))
		case tokenSpace:
			n++
		}
	}
	return n
}

// LineMap is the wrapped layout of one buffer at one display width.
type LineMap struct {
	rows  []row
	width int
}

// Wrap lays text out into rows no wider than width. Characters
// accumulate into the current word; a space closes the word. Whenever
// the running character count crosses into a row not seen before, a
// wrap decision is made: a space triggering the wrap is swallowed and
// an empty row begins; any other character moves the whole in-progress
// word to the new row, back-filling the old row with overflow
// placeholders.
func Wrap(text string, width int) LineMap {
	if width < 1 {
		width = 1
	}

	m := LineMap{width: width, rows: []row{{start: 0}}}
	var word []rune
	committed := 0
	seenRow := 0
	i := 0

	cur := func() *row { return &m.rows[len(m.rows)-1] }

	for _, r := range text {
		if r == ' ' {
			if len(word) > 0 {
				cur().tokens = append(cur().tokens, token{kind: tokenWord, text: string(word)})
				word = nil
			}
			committed++
			if committed/width > seenRow {
				// Space lands on a fresh row: swallow it.
				seenRow = committed / width
				m.rows = append(m.rows, row{start: i + 1})
			} else {
				cur().tokens = append(cur().tokens, token{kind: tokenSpace, text: " "})
			}
		} else {
			word = append(word, r)
			committed++
			if committed/width > seenRow {
				seenRow = committed / width
				for range word {
					cur().tokens = append(cur().tokens, token{kind: tokenOverflow})
				}
				m.rows = append(m.rows, row{start: i - len(word) + 1})
			}
		}
		i++
	}
	if len(word) > 0 {
		cur().tokens = append(cur().tokens, token{kind: tokenWord, text: string(word)})
	}

	return m
}

// LineCount returns the number of visual rows.
func (m LineMap) LineCount() int { return len(m.rows) }

// LastRow returns the index of the final visual row.
func (m LineMap) LastRow() int { return len(m.rows) - 1 }

// Line joins the visible tokens of row idx into its display string.
func (m LineMap) Line(idx int) string {
	if idx < 0 || idx >= len(m.rows) {
		return ""
	}
	var out []byte
	for _, t := range m.rows[idx].tokens {
		out = append(out, t.text...)
	}
	return string(out)
}

// Lines returns every row's display string in order.
func (m LineMap) Lines() []string {
	out := make([]string, len(m.rows))
	for i := range m.rows {
		out[i] = m.Line(i)
	}
	return out
}

// LineStart returns the logical index of the first character displayed
// on row idx.
func (m LineMap) LineStart(idx int) int {
	if idx < 0 || idx >= len(m.rows) {
		return 0
	}
	return m.rows[idx].start
}

// Position maps a logical character index to its visual row and
// column: walk the rows subtracting each row's visible count until the
// remainder fits on the current row. Out-of-range indices clamp to the
// end of the last row.
func (m LineMap) Position(i int) (rowIdx, col int) {
	if i < 0 {
		i = 0
	}
	rest := i
	for idx := range m.rows {
		n := m.rows[idx].visible()
		if rest <= n {
			return idx, rest
		}
		rest -= n
	}
	last := len(m.rows) - 1
	return last, m.rows[last].visible()
}
