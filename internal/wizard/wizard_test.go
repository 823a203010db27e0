package wizard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"checklist/internal/task"
)

func press(w *Wizard, keys ...tea.KeyMsg) Action {
	var last Action
	for _, k := range keys {
		last = w.HandleKey(k)
	}
	return last
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	escape    = tea.KeyMsg{Type: tea.KeyEsc}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	up        = tea.KeyMsg{Type: tea.KeyUp}
	left      = tea.KeyMsg{Type: tea.KeyLeft}
	right     = tea.KeyMsg{Type: tea.KeyRight}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	ctrlLeft  = tea.KeyMsg{Type: tea.KeyCtrlLeft}
)

func TestNextWalksAllStagesToFinished(t *testing.T) {
	w := NewAdd()
	want := []Stage{StageUrgency, StageStatus, StageDescription, StageLatest, StageTags, StageFinished}
	for _, s := range want {
		w.Next()
		if w.Stage != s {
			t.Fatalf("stage = %v, want %v", w.Stage, s)
		}
	}
	// No wraparound past the end.
	w.Next()
	if w.Stage != StageFinished {
		t.Fatalf("stage = %v after extra next, want Finished", w.Stage)
	}
}

func TestBackWalksToNameAndStops(t *testing.T) {
	w := NewAdd()
	w.Stage = StageFinished
	for i := 0; i < 6; i++ {
		w.Back()
	}
	if w.Stage != StageName {
		t.Fatalf("stage = %v after six backs, want Name", w.Stage)
	}
	w.Back()
	if w.Stage != StageName {
		t.Fatalf("back at Name must be a no-op, got %v", w.Stage)
	}
}

func TestAddModeFullRun(t *testing.T) {
	w := NewAdd()

	if a := press(w, runes("f"), runes("i"), runes("x"), enter); a != ActionNone {
		t.Fatalf("action after name = %v, want none", a)
	}
	if w.Stage != StageUrgency {
		t.Fatalf("stage = %v, want Urgency", w.Stage)
	}

	press(w, runes("3")) // High, auto-advance
	if w.Fields.Urgency != task.High || w.Stage != StageStatus {
		t.Fatalf("urgency = %v stage = %v, want High/Status", w.Fields.Urgency, w.Stage)
	}

	press(w, runes("2")) // Working
	if w.Fields.Status != task.Working || w.Stage != StageDescription {
		t.Fatalf("status = %v stage = %v, want Working/Description", w.Fields.Status, w.Stage)
	}

	press(w, runes("d"), enter) // description
	press(w, enter)             // latest left empty
	if w.Stage != StageTags {
		t.Fatalf("stage = %v, want Tags", w.Stage)
	}

	// Non-empty confirm commits a tag and stays on the Tags stage.
	if a := press(w, runes("g"), runes("o"), enter); a != ActionNone {
		t.Fatalf("action after tag commit = %v, want none", a)
	}
	if w.Stage != StageTags || w.Fields.Tags.Len() != 1 {
		t.Fatalf("stage = %v tags = %d, want Tags/1", w.Stage, w.Fields.Tags.Len())
	}

	// Empty confirm finishes the wizard.
	if a := press(w, enter); a != ActionCommit {
		t.Fatalf("action = %v, want commit", a)
	}

	built := w.Fields.BuildTask()
	if built.Name != "fix" || built.Urgency != task.High || built.Status != task.Working {
		t.Fatalf("built task = %+v", built)
	}
	if built.Description != "d" || len(built.Tags) != 1 || built.Tags[0] != "go" {
		t.Fatalf("built task = %+v", built)
	}
	if built.CompletedOn != nil {
		t.Fatal("CompletedOn must be unset for a Working task")
	}
}

func TestInvalidEnumKeyDoesNotAdvance(t *testing.T) {
	w := NewAdd()
	w.Stage = StageUrgency
	press(w, runes("9"), runes("x"))
	if w.Stage != StageUrgency {
		t.Fatalf("stage = %v, want Urgency", w.Stage)
	}
}

func TestEnumLeftGoesBack(t *testing.T) {
	w := NewAdd()
	w.Stage = StageUrgency
	press(w, left)
	if w.Stage != StageName {
		t.Fatalf("stage = %v, want Name", w.Stage)
	}
}

func TestCtrlLeftStepsBackOnTextStage(t *testing.T) {
	w := NewAdd()
	w.Stage = StageDescription
	press(w, ctrlLeft)
	if w.Stage != StageStatus {
		t.Fatalf("stage = %v, want Status", w.Stage)
	}
}

func TestQuickAddOnlyVisitsName(t *testing.T) {
	w := NewQuickAdd()
	if a := press(w, runes("m"), runes("i"), runes("l"), runes("k"), enter); a != ActionCommit {
		t.Fatalf("action = %v, want commit", a)
	}
	if w.Stage != StageFinished {
		t.Fatalf("stage = %v, want Finished", w.Stage)
	}
	if got := w.Fields.TaskName(); got != "milk" {
		t.Fatalf("name = %q, want milk", got)
	}
}

func TestUpdateModeStagingJumps(t *testing.T) {
	orig := task.New("old name")
	orig.Urgency = task.Medium
	orig.SetTags([]string{"a"})

	cases := []struct {
		digit string
		want  Stage
	}{
		{"1", StageName},
		{"2", StageStatus},
		{"3", StageUrgency},
		{"4", StageDescription},
		{"5", StageLatest},
		{"6", StageTags},
	}
	for _, c := range cases {
		w := NewUpdate(orig)
		if w.Stage != StageStaging {
			t.Fatalf("update wizard starts at %v, want Staging", w.Stage)
		}
		press(w, runes(c.digit))
		if w.Stage != c.want {
			t.Fatalf("digit %s: stage = %v, want %v", c.digit, w.Stage, c.want)
		}
	}
}

func TestUpdateModeEnumSelectionFinishes(t *testing.T) {
	orig := task.New("thing")
	w := NewUpdate(orig)
	press(w, runes("3")) // jump to Urgency
	if a := press(w, runes("4")); a != ActionCommit {
		t.Fatalf("action = %v, want commit", a)
	}
	if w.Fields.Urgency != task.Critical {
		t.Fatalf("urgency = %v, want Critical", w.Fields.Urgency)
	}
}

func TestUpdateModeTextConfirmFinishes(t *testing.T) {
	orig := task.New("thing")
	w := NewUpdate(orig)
	press(w, runes("1")) // jump to Name

	// Cursor seeds at the end of the existing text.
	if got := w.Fields.Name.Cursor(); got != 5 {
		t.Fatalf("cursor = %d, want 5", got)
	}

	press(w, runes("!"))
	if a := press(w, enter); a != ActionCommit {
		t.Fatal("enter on a text stage in update mode must finish")
	}
	if got := w.Fields.TaskName(); got != "thing!" {
		t.Fatalf("name = %q, want thing!", got)
	}
}

func TestUpdateModeCtrlLeftReturnsToStaging(t *testing.T) {
	w := NewUpdate(task.New("thing"))
	press(w, runes("4"))
	press(w, ctrlLeft)
	if w.Stage != StageStaging {
		t.Fatalf("stage = %v, want Staging", w.Stage)
	}
}

func TestEscapeCancelsAnywhere(t *testing.T) {
	w := NewAdd()
	press(w, runes("a"), enter, runes("2"))
	if a := w.HandleKey(escape); a != ActionCancel {
		t.Fatalf("action = %v, want cancel", a)
	}
}

func TestTagsHighlightMode(t *testing.T) {
	w := NewAdd()
	w.Stage = StageTags
	press(w, runes("b"), enter)
	press(w, runes("a"), enter)
	press(w, runes("c"), enter)

	// Down enters highlight mode.
	press(w, down)
	if !w.Fields.Tags.Highlighting() {
		t.Fatal("down should enter highlight mode")
	}

	press(w, right)
	press(w, runes("d")) // delete "b", highlight moves left to "a"
	if got := w.Fields.Tags.Sorted(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("tags = %v, want [a c]", got)
	}
	if w.Fields.Tags.Highlighted() != 0 {
		t.Fatalf("highlight = %d, want 0", w.Fields.Tags.Highlighted())
	}

	// Up leaves highlight mode, text keys edit the input again.
	press(w, up)
	if w.Fields.Tags.Highlighting() {
		t.Fatal("up should exit highlight mode")
	}
	press(w, runes("z"))
	if w.Fields.Tags.Input.Content() != "z" {
		t.Fatalf("input = %q, want z", w.Fields.Tags.Input.Content())
	}
}

func TestTagsHighlightRefusedWhenEmpty(t *testing.T) {
	w := NewAdd()
	w.Stage = StageTags
	press(w, down)
	if w.Fields.Tags.Highlighting() {
		t.Fatal("highlight mode must not start with no tags")
	}
}

func TestTextEditingInsideWizard(t *testing.T) {
	w := NewAdd()
	press(w, runes("a"), runes("b"), runes("c"), left, backspace)
	if got := w.Fields.Name.Content(); got != "ac" {
		t.Fatalf("name = %q, want ac", got)
	}
	press(w, right, runes("d"))
	if got := w.Fields.Name.Content(); got != "acd" {
		t.Fatalf("name = %q, want acd", got)
	}
}

func TestApplyToPreservesIdentity(t *testing.T) {
	orig := task.New("before")
	orig.ApplyStatus(task.Completed)
	id, created := orig.ID, orig.CreatedAt

	w := NewUpdate(orig)
	press(w, runes("2")) // Status stage
	press(w, runes("1")) // back to Open, finishes
	w.Fields.ApplyTo(orig)

	if orig.ID != id || !orig.CreatedAt.Equal(created) {
		t.Fatal("id and creation time must survive an update")
	}
	if orig.Status != task.Open || orig.CompletedOn != nil {
		t.Fatalf("status = %v completedOn = %v, want Open/nil", orig.Status, orig.CompletedOn)
	}
}
