package wizard

import (
	"sort"
	"strings"

	"checklist/internal/textedit"
)

// TagEditor manages the committed tag set plus the tag currently being
// typed. Tags are stored unordered; every index-based operation works
// against the lexicographically sorted view, recomputed on each access.
type TagEditor struct {
	tags         map[string]struct{}
	Input        *textedit.Buffer
	highlighted  int
	highlighting bool
}

func NewTagEditor(tags []string) *TagEditor {
	e := &TagEditor{
		tags:  make(map[string]struct{}, len(tags)),
		Input: textedit.NewBuffer(""),
	}
	for _, t := range tags {
		if t != "" {
			e.tags[t] = struct{}{}
		}
	}
	return e
}

func (e *TagEditor) Len() int { return len(e.tags) }

// Sorted returns the committed tags in lexical order.
func (e *TagEditor) Sorted() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CommitTyped moves non-empty typed text into the tag set and clears
// the input. The set deduplicates on its own.
func (e *TagEditor) CommitTyped() {
	text := strings.TrimSpace(e.Input.Content())
	e.Input.SetContent("")
	if text == "" {
		return
	}
	e.tags[text] = struct{}{}
}

func (e *TagEditor) Highlighting() bool { return e.highlighting }

// Highlighted returns the index into Sorted() of the highlighted tag.
func (e *TagEditor) Highlighted() int { return e.highlighted }

// EnterHighlight switches to highlight mode. Refused while the set is
// empty.
func (e *TagEditor) EnterHighlight() bool {
	if len(e.tags) == 0 {
		return false
	}
	e.highlighting = true
	e.clampHighlight()
	return true
}

func (e *TagEditor) ExitHighlight() {
	e.highlighting = false
}

func (e *TagEditor) HighlightLeft() {
	e.highlighted--
	e.clampHighlight()
}

func (e *TagEditor) HighlightRight() {
	e.highlighted++
	e.clampHighlight()
}

// DeleteHighlighted removes the tag at the highlighted sorted position
// and moves the highlight one left. Highlight mode ends automatically
// when the last tag goes.
func (e *TagEditor) DeleteHighlighted() {
	if !e.highlighting || len(e.tags) == 0 {
		return
	}
	sorted := e.Sorted()
	e.clampHighlight()
	delete(e.tags, sorted[e.highlighted])
	e.highlighted--
	e.clampHighlight()
	if len(e.tags) == 0 {
		e.highlighting = false
	}
}

func (e *TagEditor) clampHighlight() {
	if e.highlighted < 0 {
		e.highlighted = 0
	}
	if max := len(e.tags) - 1; e.highlighted > max && max >= 0 {
		e.highlighted = max
	}
}
