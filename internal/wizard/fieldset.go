package wizard

import (
	"strings"

	"checklist/internal/task"
	"checklist/internal/textedit"
)

// FieldSet holds the editable copy of one task's fields for the
// lifetime of a wizard run. It never aliases the task it was seeded
// from; values flow back only at commit.
type FieldSet struct {
	Name        *textedit.Buffer
	Description *textedit.Buffer
	Latest      *textedit.Buffer
	Urgency     task.Urgency
	Status      task.Status
	Tags        *TagEditor
}

func NewFieldSet() *FieldSet {
	return &FieldSet{
		Name:        textedit.NewBuffer(""),
		Description: textedit.NewBuffer(""),
		Latest:      textedit.NewBuffer(""),
		Tags:        NewTagEditor(nil),
	}
}

// FieldSetFromTask snapshots a task for editing, cursors at the end of
// each text field.
func FieldSetFromTask(t *task.Task) *FieldSet {
	return &FieldSet{
		Name:        textedit.NewBuffer(t.Name),
		Description: textedit.NewBuffer(t.Description),
		Latest:      textedit.NewBuffer(t.Latest),
		Urgency:     t.Urgency,
		Status:      t.Status,
		Tags:        NewTagEditor(t.Tags),
	}
}

// TaskName returns the trimmed name field. Empty means the field set
// cannot be committed.
func (f *FieldSet) TaskName() string {
	return strings.TrimSpace(f.Name.Content())
}

// BuildTask creates a new task from the field set. The completion
// timestamp is derived from the chosen status here, at commit time.
func (f *FieldSet) BuildTask() *task.Task {
	t := task.New(f.TaskName())
	t.Description = f.Description.Content()
	t.Latest = f.Latest.Content()
	t.Urgency = f.Urgency
	t.SetTags(f.Tags.Sorted())
	t.ApplyStatus(f.Status)
	return t
}

// ApplyTo writes the field set onto an existing task, preserving its
// id and creation time.
func (f *FieldSet) ApplyTo(t *task.Task) {
	t.Name = f.TaskName()
	t.Description = f.Description.Content()
	t.Latest = f.Latest.Content()
	t.Urgency = f.Urgency
	t.SetTags(f.Tags.Sorted())
	t.ApplyStatus(f.Status)
}
