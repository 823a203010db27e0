package task

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Urgency int

const (
	Low Urgency = iota
	Medium
	High
	Critical
)

func (u Urgency) String() string {
	switch u {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	case Critical:
		return "Critical"
	}
	return "Low"
}

func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	case "critical":
		return Critical, nil
	}
	return Low, fmt.Errorf("invalid urgency: %q", s)
}

type Status int

const (
	Open Status = iota
	Working
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "Open"
	case Working:
		return "Working"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	}
	return "Open"
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return Open, nil
	case "working":
		return Working, nil
	case "paused":
		return Paused, nil
	case "completed":
		return Completed, nil
	}
	return Open, fmt.Errorf("invalid status: %q", s)
}

// Display is the status filter applied to the task list.
type Display int

const (
	DisplayAll Display = iota
	DisplayCompleted
	DisplayNotCompleted
)

func (d Display) String() string {
	switch d {
	case DisplayCompleted:
		return "Completed"
	case DisplayNotCompleted:
		return "NotCompleted"
	}
	return "All"
}

// Next cycles All -> Completed -> NotCompleted -> All.
func (d Display) Next() Display {
	switch d {
	case DisplayAll:
		return DisplayCompleted
	case DisplayCompleted:
		return DisplayNotCompleted
	}
	return DisplayAll
}

func ParseDisplay(s string) (Display, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return DisplayAll, nil
	case "completed":
		return DisplayCompleted, nil
	case "notcompleted", "open":
		return DisplayNotCompleted, nil
	}
	return DisplayAll, fmt.Errorf("invalid display filter: %q", s)
}

type Task struct {
	ID          uuid.UUID
	Name        string
	Description string
	Latest      string
	Urgency     Urgency
	Status      Status
	Tags        []string
	CreatedAt   time.Time
	CompletedOn *time.Time
}

// New creates a task with the given name, defaulting to Low/Open.
func New(name string) *Task {
	return &Task{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// ApplyStatus sets the status and keeps CompletedOn in step with it:
// set when the task becomes Completed, cleared otherwise.
func (t *Task) ApplyStatus(s Status) {
	t.Status = s
	if s == Completed {
		if t.CompletedOn == nil {
			now := time.Now()
			t.CompletedOn = &now
		}
	} else {
		t.CompletedOn = nil
	}
}

// ToggleComplete flips between Completed and Open.
func (t *Task) ToggleComplete() {
	if t.Status == Completed {
		t.ApplyStatus(Open)
	} else {
		t.ApplyStatus(Completed)
	}
}

// SetTags replaces the tag set, deduplicating and dropping blanks.
func (t *Task) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	t.Tags = out
}

// SortedTags returns the tags in lexical order for display.
func (t *Task) SortedTags() []string {
	out := make([]string, len(t.Tags))
	copy(out, t.Tags)
	sort.Strings(out)
	return out
}

type List []*Task

// Filter keeps tasks matching the display filter and, when tagQuery is
// non-empty, tasks with at least one tag containing it (case sensitive).
// Tasks without tags never match a non-empty query.
func (l List) Filter(display Display, tagQuery string) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		switch display {
		case DisplayCompleted:
			if t.Status != Completed {
				continue
			}
		case DisplayNotCompleted:
			if t.Status == Completed {
				continue
			}
		}
		if tagQuery != "" && !matchesTag(t, tagQuery) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesTag(t *Task, query string) bool {
	for _, tag := range t.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

// SortByUrgency orders the list in place. The tie-break on equal
// urgency differs by direction: descending puts newer tasks first,
// ascending puts older tasks first.
func (l List) SortByUrgency(desc bool) {
	if desc {
		sort.SliceStable(l, func(i, j int) bool { return urgencyDesc(l[i], l[j]) })
	} else {
		sort.SliceStable(l, func(i, j int) bool { return urgencyAsc(l[i], l[j]) })
	}
}

func urgencyDesc(a, b *Task) bool {
	if a.Urgency != b.Urgency {
		return a.Urgency > b.Urgency
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func urgencyAsc(a, b *Task) bool {
	if a.Urgency != b.Urgency {
		return a.Urgency < b.Urgency
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// IndexOf returns the position of the task with the given id, or -1.
func (l List) IndexOf(id uuid.UUID) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}
