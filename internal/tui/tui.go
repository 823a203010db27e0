package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"

	"checklist/internal/config"
	"checklist/internal/storage"
	"checklist/internal/task"
	"checklist/internal/wizard"
)

type viewState int

const (
	viewList viewState = iota
	viewTagFilter
	viewWizard
	viewConfirmDelete
)

// listKeyMap defines keybindings for the main list view
type listKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Add        key.Binding
	Update     key.Binding
	Quick      key.Binding
	Delete     key.Binding
	Sort       key.Binding
	Filter     key.Binding
	TagFilter  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Update, k.Quit, k.Help}
}

// FullHelp returns keybindings for the expanded help view.
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Update, k.Quick, k.Delete},
		{k.Sort, k.Filter, k.TagFilter},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}

var listKeys = listKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first task"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last task"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add task"),
	),
	Update: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "update task"),
	),
	Quick: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q+a/c", "quick add/complete"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle sort"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle filter"),
	),
	TagFilter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "tag filter"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+up"),
		key.WithHelp("ctrl+↑", "scroll info up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+down"),
		key.WithHelp("ctrl+↓", "scroll info down"),
	),
	Help: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("x", "esc", "ctrl+c"),
		key.WithHelp("x", "quit"),
	),
}

type Model struct {
	config *config.Config
	store  *storage.Store

	tasks  task.List // visible tasks, filtered and sorted
	cursor int
	view   viewState

	display  task.Display
	sortDesc bool
	tagQuery string

	wizard   *wizard.Wizard
	confirm  *huh.Form
	deleting *task.Task

	tagInput textinput.Model
	detail   viewport.Model
	listHelp help.Model

	// One-key prefix state for the q+a / q+c quick actions.
	pendingQuick bool

	styles    styleSet
	width     int
	height    int
	statusMsg string
	quitting  bool
}

func NewModel(cfg *config.Config, store *storage.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by tag..."
	ti.Width = 30

	display, err := task.ParseDisplay(cfg.DisplayFilter)
	if err != nil {
		display = task.DisplayAll
	}

	lh := help.New()
	lh.ShowAll = false

	m := Model{
		config:   cfg,
		store:    store,
		display:  display,
		sortDesc: cfg.UrgencySortDesc,
		tagInput: ti,
		detail:   viewport.New(40, 10),
		listHelp: lh,
		styles:   newStyleSet(cfg.Theme),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the visible list from scratch: fetch everything,
// filter, then sort. Never incremental.
func (m *Model) refresh() {
	all, err := m.store.All()
	if err != nil {
		m.statusMsg = fmt.Sprintf("Failed to load tasks: %v", err)
		return
	}
	m.tasks = all.Filter(m.display, m.tagQuery)
	m.tasks.SortByUrgency(m.sortDesc)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.renderDetail()
}

func (m *Model) selected() *task.Task {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// selectTask moves the cursor to the task with the given id, if it is
// still visible.
func (m *Model) selectTask(t *task.Task) {
	if t == nil {
		return
	}
	if i := m.tasks.IndexOf(t.ID); i >= 0 {
		m.cursor = i
	}
	m.renderDetail()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The delete confirmation runs the embedded form until it
	// completes or is cancelled.
	if m.view == viewConfirmDelete && m.confirm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.closeConfirm()
			return m, nil
		}

		form, cmd := m.confirm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirm = f
		}

		if m.confirm.State == huh.StateCompleted {
			if m.confirm.GetBool("confirm") && m.deleting != nil {
				if err := m.store.Delete(m.deleting.ID); err != nil {
					m.statusMsg = fmt.Sprintf("Failed to delete: %v", err)
				} else {
					m.statusMsg = fmt.Sprintf("Deleted: %s", m.deleting.Name)
					if m.cursor > 0 {
						m.cursor--
					}
				}
				m.refresh()
			}
			m.closeConfirm()
			return m, cmd
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = min(60, max(20, m.width/2))
		m.detail.Height = max(4, m.height/3)
		m.renderDetail()

	case tea.KeyMsg:
		switch m.view {
		case viewWizard:
			return m.handleWizardKey(msg)
		case viewTagFilter:
			return m.handleTagFilterKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending "q" prefix captures the next key.
	if m.pendingQuick {
		m.pendingQuick = false
		switch msg.String() {
		case "a":
			m.wizard = wizard.NewQuickAdd()
			m.view = viewWizard
			m.statusMsg = ""
		case "c":
			m.quickToggleComplete()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, listKeys.Help):
		m.listHelp.ShowAll = !m.listHelp.ShowAll

	case key.Matches(msg, listKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.renderDetail()
		}

	case key.Matches(msg, listKeys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
			m.renderDetail()
		}

	case key.Matches(msg, listKeys.Top):
		m.cursor = 0
		m.renderDetail()

	case key.Matches(msg, listKeys.Bottom):
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
			m.renderDetail()
		}

	case key.Matches(msg, listKeys.Add):
		m.wizard = wizard.NewAdd()
		m.view = viewWizard
		m.statusMsg = ""

	case key.Matches(msg, listKeys.Update):
		if t := m.selected(); t != nil {
			m.wizard = wizard.NewUpdate(t)
			m.view = viewWizard
			m.statusMsg = ""
		}

	case key.Matches(msg, listKeys.Quick):
		m.pendingQuick = true

	case key.Matches(msg, listKeys.Delete):
		if t := m.selected(); t != nil {
			m.deleting = t
			m.confirm = newConfirmForm(t.Name)
			m.view = viewConfirmDelete
			return m, m.confirm.Init()
		}

	case key.Matches(msg, listKeys.Sort):
		m.sortDesc = !m.sortDesc
		if err := m.saveViewSettings(); err != nil {
			m.statusMsg = fmt.Sprintf("Failed to save config: %v", err)
		}
		m.refresh()

	case key.Matches(msg, listKeys.Filter):
		m.display = m.display.Next()
		if err := m.saveViewSettings(); err != nil {
			m.statusMsg = fmt.Sprintf("Failed to save config: %v", err)
		}
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, listKeys.TagFilter):
		m.view = viewTagFilter
		m.tagInput.SetValue(m.tagQuery)
		m.tagInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, listKeys.ScrollUp):
		m.detail.LineUp(1)

	case key.Matches(msg, listKeys.ScrollDown):
		m.detail.LineDown(1)
	}

	return m, nil
}

func (m Model) handleTagFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewList
		m.tagQuery = ""
		m.tagInput.SetValue("")
		m.tagInput.Blur()
		m.cursor = 0
		m.refresh()
		return m, nil

	case "enter":
		m.view = viewList
		m.tagInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)

	// Live filter
	m.tagQuery = m.tagInput.Value()
	m.cursor = 0
	m.refresh()

	return m, cmd
}

func (m Model) handleWizardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wizard == nil {
		m.view = viewList
		return m, nil
	}

	switch m.wizard.HandleKey(msg) {
	case wizard.ActionCancel:
		m.wizard = nil
		m.view = viewList
		m.statusMsg = "Cancelled"

	case wizard.ActionCommit:
		m.commitWizard()
	}

	return m, nil
}

// commitWizard persists the finished field set. A missing name or a
// store failure keeps the wizard open so nothing typed is lost.
func (m *Model) commitWizard() {
	w := m.wizard

	if w.Fields.TaskName() == "" {
		w.Stage = wizard.StageName
		m.statusMsg = "A task needs a name"
		return
	}

	var committed *task.Task
	var err error
	switch w.Mode {
	case wizard.ModeUpdate:
		w.Fields.ApplyTo(w.Target)
		committed = w.Target
		err = m.store.Update(w.Target)
	default:
		committed = w.Fields.BuildTask()
		err = m.store.Add(committed)
	}

	if err != nil {
		w.Stage = wizard.StageName
		m.statusMsg = fmt.Sprintf("Failed to save: %v", err)
		return
	}

	m.wizard = nil
	m.view = viewList
	m.statusMsg = fmt.Sprintf("Saved: %s", committed.Name)
	m.refresh()
	m.selectTask(committed)
}

// quickToggleComplete flips the selected task between Completed and
// Open without opening the wizard.
func (m *Model) quickToggleComplete() {
	t := m.selected()
	if t == nil {
		return
	}
	t.ToggleComplete()
	if err := m.store.Update(t); err != nil {
		m.statusMsg = fmt.Sprintf("Failed to update: %v", err)
		return
	}
	if t.Status == task.Completed {
		m.statusMsg = fmt.Sprintf("Completed: %s", t.Name)
	} else {
		m.statusMsg = fmt.Sprintf("Reopened: %s", t.Name)
	}
	m.refresh()
	m.selectTask(t)
}

func (m *Model) closeConfirm() {
	m.view = viewList
	m.confirm = nil
	m.deleting = nil
}

// saveViewSettings writes the current filter and sort direction back
// to the config file so they survive the session.
func (m *Model) saveViewSettings() error {
	m.config.DisplayFilter = m.display.String()
	m.config.UrgencySortDesc = m.sortDesc
	return config.Save(m.config)
}

func newConfirmForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Affirmative("Yes").
				Negative("No").
				Key("confirm"),
		),
	)
}

// renderDetail rebuilds the info pane for the selected task. The
// markdown goes through glamour so descriptions can carry formatting.
func (m *Model) renderDetail() {
	t := m.selected()
	if t == nil {
		m.detail.SetContent("")
		return
	}

	content := detailMarkdown(t)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, m.detail.Width-2)),
	)
	if err == nil {
		if s, err2 := r.Render(content); err2 == nil {
			content = s
		}
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

func Run(cfg *config.Config, store *storage.Store) error {
	m := NewModel(cfg, store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
