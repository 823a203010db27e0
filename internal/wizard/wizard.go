package wizard

import (
	tea "github.com/charmbracelet/bubbletea"

	"checklist/internal/task"
	"checklist/internal/textedit"
)

// Action is what the host should do after a key was handled.
type Action int

const (
	ActionNone Action = iota
	// ActionCommit: the wizard reached Finished; build or apply the
	// field set and persist it.
	ActionCommit
	// ActionCancel: discard the field set and close the wizard.
	ActionCancel
)

// Wizard drives one task entry session. It owns the field set and the
// stage machine; persisting the result is the host's job.
type Wizard struct {
	Mode   Mode
	Stage  Stage
	Fields *FieldSet
	// Target is the task being edited in Update mode, nil otherwise.
	Target *task.Task
}

func NewAdd() *Wizard {
	return &Wizard{Mode: ModeAdd, Stage: StageName, Fields: NewFieldSet()}
}

func NewQuickAdd() *Wizard {
	return &Wizard{Mode: ModeQuickAdd, Stage: StageName, Fields: NewFieldSet()}
}

func NewUpdate(t *task.Task) *Wizard {
	return &Wizard{Mode: ModeUpdate, Stage: StageStaging, Fields: FieldSetFromTask(t), Target: t}
}

// Next advances one stage in linear order. QuickAdd skips straight
// from Name to Finished.
func (w *Wizard) Next() {
	if w.Mode == ModeQuickAdd {
		if w.Stage == StageName {
			w.Stage = StageFinished
		}
		return
	}
	w.Stage = nextStage[w.Stage]
}

// Back steps one stage back, a no-op at Name.
func (w *Wizard) Back() {
	if w.Mode == ModeQuickAdd {
		if w.Stage == StageFinished {
			w.Stage = StageName
		}
		return
	}
	w.Stage = prevStage[w.Stage]
}

// HandleKey dispatches one key press to the active stage and reports
// what the host should do next.
func (w *Wizard) HandleKey(msg tea.KeyMsg) Action {
	if msg.String() == "esc" {
		return ActionCancel
	}

	switch w.Stage {
	case StageStaging:
		w.handleStaging(msg)
	case StageName:
		w.handleText(w.Fields.Name, msg)
	case StageDescription:
		w.handleText(w.Fields.Description, msg)
	case StageLatest:
		w.handleText(w.Fields.Latest, msg)
	case StageUrgency:
		w.handleUrgency(msg)
	case StageStatus:
		w.handleStatus(msg)
	case StageTags:
		w.handleTags(msg)
	}

	if w.Stage == StageFinished {
		return ActionCommit
	}
	return ActionNone
}

// handleStaging is the Update-mode field menu: a digit jumps straight
// to that field's stage.
func (w *Wizard) handleStaging(msg tea.KeyMsg) {
	switch msg.String() {
	case "1":
		w.Stage = StageName
	case "2":
		w.Stage = StageStatus
	case "3":
		w.Stage = StageUrgency
	case "4":
		w.Stage = StageDescription
	case "5":
		w.Stage = StageLatest
	case "6":
		w.Stage = StageTags
	}
}

func (w *Wizard) handleText(buf *textedit.Buffer, msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		switch w.Mode {
		case ModeAdd:
			w.Next()
		default:
			w.Stage = StageFinished
		}
	case "ctrl+left":
		w.textBack()
	case "left":
		buf.MoveLeft()
	case "right":
		buf.MoveRight()
	case "shift+left":
		buf.ExtendLeft()
	case "shift+right":
		buf.ExtendRight()
	case "ctrl+a":
		buf.SelectAll()
	case "home":
		buf.MoveStart()
	case "end":
		buf.MoveEnd()
	case "backspace":
		buf.DeleteBackward()
	case " ":
		buf.InsertRune(' ')
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				buf.InsertRune(r)
			}
		}
	}
}

// textBack leaves a text stage without confirming it: one stage back
// in Add mode, back to the field menu in Update mode.
func (w *Wizard) textBack() {
	switch w.Mode {
	case ModeAdd:
		w.Back()
	case ModeUpdate:
		w.Stage = StageStaging
	}
}

func (w *Wizard) handleUrgency(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "ctrl+left":
		w.enumBack()
		return
	case "1":
		w.Fields.Urgency = task.Low
	case "2":
		w.Fields.Urgency = task.Medium
	case "3":
		w.Fields.Urgency = task.High
	case "4":
		w.Fields.Urgency = task.Critical
	default:
		return
	}
	w.enumAdvance()
}

func (w *Wizard) handleStatus(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "ctrl+left":
		w.enumBack()
		return
	case "1":
		w.Fields.Status = task.Open
	case "2":
		w.Fields.Status = task.Working
	case "3":
		w.Fields.Status = task.Paused
	case "4":
		w.Fields.Status = task.Completed
	default:
		return
	}
	w.enumAdvance()
}

// enumAdvance moves on after a valid selector key: the next stage when
// walking the full wizard, straight to Finished when editing a single
// field.
func (w *Wizard) enumAdvance() {
	switch w.Mode {
	case ModeUpdate:
		w.Stage = StageFinished
	default:
		w.Next()
	}
}

func (w *Wizard) enumBack() {
	switch w.Mode {
	case ModeAdd:
		w.Back()
	case ModeUpdate:
		w.Stage = StageStaging
	}
}

func (w *Wizard) handleTags(msg tea.KeyMsg) {
	tags := w.Fields.Tags

	if msg.String() == "enter" {
		if tags.Input.Content() == "" {
			switch w.Mode {
			case ModeAdd:
				w.Next()
			case ModeUpdate:
				w.Stage = StageFinished
			}
		} else {
			tags.CommitTyped()
		}
		return
	}

	if tags.Highlighting() {
		switch msg.String() {
		case "ctrl+left":
			w.textBack()
		case "left":
			tags.HighlightLeft()
		case "right":
			tags.HighlightRight()
		case "up":
			tags.ExitHighlight()
		case "d":
			tags.DeleteHighlighted()
		}
		return
	}

	switch msg.String() {
	case "down":
		tags.EnterHighlight()
	case "ctrl+left":
		w.textBack()
	default:
		w.handleText(tags.Input, msg)
	}
}
