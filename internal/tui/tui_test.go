package tui

import (
	"testing"

	"checklist/internal/config"
	"checklist/internal/storage"
	"checklist/internal/task"
	"checklist/internal/wizard"
)

func newTestModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	return NewModel(&cfg, store), store
}

func TestCommitWithEmptyNameKeepsWizardOpen(t *testing.T) {
	m, store := newTestModel(t)

	m.wizard = wizard.NewQuickAdd()
	m.view = viewWizard
	m.wizard.Stage = wizard.StageFinished
	m.commitWizard()

	if m.wizard == nil {
		t.Fatal("wizard must stay open without a name")
	}
	if m.wizard.Stage != wizard.StageName {
		t.Fatalf("stage = %v, want Name", m.wizard.Stage)
	}
	if m.statusMsg == "" {
		t.Fatal("expected a status message")
	}

	list, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(list) != 0 {
		t.Fatal("nothing may be persisted without a name")
	}
}

func TestCommitAddPersistsAndSelects(t *testing.T) {
	m, store := newTestModel(t)

	m.wizard = wizard.NewAdd()
	m.view = viewWizard
	m.wizard.Fields.Name.InsertString("write report")
	m.wizard.Fields.Urgency = task.High
	m.wizard.Stage = wizard.StageFinished
	m.commitWizard()

	if m.wizard != nil || m.view != viewList {
		t.Fatal("wizard should close after a successful commit")
	}

	list, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(list) != 1 || list[0].Name != "write report" {
		t.Fatalf("stored = %v", list)
	}

	sel := m.selected()
	if sel == nil || sel.Name != "write report" {
		t.Fatal("the new task should be selected")
	}
}

func TestCommitUpdateAppliesFields(t *testing.T) {
	m, store := newTestModel(t)

	orig := task.New("before")
	if err := store.Add(orig); err != nil {
		t.Fatalf("add: %v", err)
	}
	m.refresh()

	m.wizard = wizard.NewUpdate(m.selected())
	m.view = viewWizard
	m.wizard.Fields.Name.SetContent("after")
	m.wizard.Fields.Status = task.Completed
	m.wizard.Stage = wizard.StageFinished
	m.commitWizard()

	list, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("stored = %v", list)
	}
	got := list[0]
	if got.ID != orig.ID || got.Name != "after" {
		t.Fatalf("got = %+v", got)
	}
	if got.Status != task.Completed || got.CompletedOn == nil {
		t.Fatal("completion must be applied at commit time")
	}
}

func TestRefreshRecomputesFilterAndSort(t *testing.T) {
	m, store := newTestModel(t)

	low := task.New("low")
	crit := task.New("crit")
	crit.Urgency = task.Critical
	done := task.New("done")
	done.ApplyStatus(task.Completed)
	for _, tk := range []*task.Task{low, crit, done} {
		if err := store.Add(tk); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	m.display = task.DisplayNotCompleted
	m.sortDesc = true
	m.refresh()

	if len(m.tasks) != 2 {
		t.Fatalf("visible = %d, want 2", len(m.tasks))
	}
	if m.tasks[0].Name != "crit" || m.tasks[1].Name != "low" {
		t.Fatalf("order = [%s %s]", m.tasks[0].Name, m.tasks[1].Name)
	}

	m.sortDesc = false
	m.refresh()
	if m.tasks[0].Name != "low" {
		t.Fatalf("ascending order starts with %s, want low", m.tasks[0].Name)
	}

	m.display = task.DisplayCompleted
	m.refresh()
	if len(m.tasks) != 1 || m.tasks[0].Name != "done" {
		t.Fatalf("completed view = %v", m.tasks)
	}
}

func TestTagQueryFiltersView(t *testing.T) {
	m, store := newTestModel(t)

	tagged := task.New("tagged")
	tagged.SetTags([]string{"work"})
	plain := task.New("plain")
	for _, tk := range []*task.Task{tagged, plain} {
		if err := store.Add(tk); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	m.tagQuery = "wor"
	m.refresh()
	if len(m.tasks) != 1 || m.tasks[0].Name != "tagged" {
		t.Fatalf("visible = %v", m.tasks)
	}
}

func TestQuickToggleComplete(t *testing.T) {
	m, store := newTestModel(t)

	tk := task.New("flip me")
	if err := store.Add(tk); err != nil {
		t.Fatalf("add: %v", err)
	}
	m.refresh()

	m.quickToggleComplete()
	list, err := store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if list[0].Status != task.Completed || list[0].CompletedOn == nil {
		t.Fatalf("got = %+v", list[0])
	}

	m.refresh()
	m.quickToggleComplete()
	list, err = store.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if list[0].Status != task.Open || list[0].CompletedOn != nil {
		t.Fatalf("got = %+v", list[0])
	}
}

func TestCursorClampsAfterShrink(t *testing.T) {
	m, store := newTestModel(t)

	a, b := task.New("a"), task.New("b")
	for _, tk := range []*task.Task{a, b} {
		if err := store.Add(tk); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	m.refresh()
	m.cursor = 1

	if err := store.Delete(m.tasks[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	m.refresh()

	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after the list shrank", m.cursor)
	}
}
