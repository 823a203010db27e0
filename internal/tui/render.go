package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"checklist/internal/config"
	"checklist/internal/task"
	"checklist/internal/textedit"
	"checklist/internal/wizard"
)

// popupWidth is the text width inside the wizard popups; the wrap
// layout and the rendered lines both derive from it.
const popupWidth = 40

type styleSet struct {
	title     lipgloss.Style
	selected  lipgloss.Style
	taskName  lipgloss.Style
	completed lipgloss.Style
	status    lipgloss.Style
	help      lipgloss.Style
	popup     lipgloss.Style
	prompt    lipgloss.Style
	cursor    lipgloss.Style
	selection lipgloss.Style
	tag       lipgloss.Style
	tagActive lipgloss.Style
	urgency   map[task.Urgency]lipgloss.Style
}

func newStyleSet(theme config.ThemeConfig) styleSet {
	return styleSet{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Border)).
			Bold(true).
			MarginBottom(1),
		selected: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Selection)).
			Foreground(lipgloss.Color("#1A1A1A")),
		taskName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		completed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Strikethrough(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Selection)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")),
		popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border)).
			Padding(1, 2),
		prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Border)).
			Bold(true),
		cursor: lipgloss.NewStyle().
			Reverse(true),
		selection: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.Highlight)).
			Foreground(lipgloss.Color("#1A1A1A")),
		tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color(theme.Selection)).
			Padding(0, 1),
		tagActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color(theme.High)).
			Padding(0, 1),
		urgency: map[task.Urgency]lipgloss.Style{
			task.Low:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Low)),
			task.Medium:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Medium)),
			task.High:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.High)),
			task.Critical: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Critical)),
		},
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.view == viewWizard && m.wizard != nil {
		return m.overlay(m.renderWizard())
	}
	if m.view == viewConfirmDelete && m.confirm != nil {
		return m.overlay(m.styles.popup.Render(m.confirm.View()))
	}

	var b strings.Builder

	b.WriteString(m.styles.title.Render("Checklist") + "\n\n")

	if m.view == viewTagFilter {
		b.WriteString(m.styles.popup.Render("/ "+m.tagInput.View()) + "\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.help.Render("  No tasks. Press 'a' to add one.") + "\n")
	} else {
		for i, t := range m.tasks {
			b.WriteString(m.renderTask(t, i == m.cursor) + "\n")
		}
	}

	b.WriteString("\n" + m.statusLine() + "\n")

	if m.selected() != nil {
		b.WriteString(m.detail.View() + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString(m.styles.status.Render(m.statusMsg) + "\n")
	}

	b.WriteString(m.listHelp.View(listKeys))

	return b.String()
}

// statusLine shows the active filter and sort settings.
func (m Model) statusLine() string {
	sort := "urgency ↓"
	if !m.sortDesc {
		sort = "urgency ↑"
	}
	line := fmt.Sprintf("  filter: %s · sort: %s", m.display, sort)
	if m.tagQuery != "" {
		line += fmt.Sprintf(" · tag: %q", m.tagQuery)
	}
	return m.styles.help.Render(line)
}

func (m Model) renderTask(t *task.Task, selected bool) string {
	var checkbox string
	if t.Status == task.Completed {
		checkbox = "[x]"
	} else {
		checkbox = "[ ]"
	}

	marker := m.styles.urgency[t.Urgency].Render("●")

	var name string
	if t.Status == task.Completed {
		name = m.styles.completed.Render(t.Name)
	} else {
		name = m.styles.taskName.Render(t.Name)
	}

	var tags string
	if len(t.Tags) > 0 {
		tags = m.styles.help.Render(" #" + strings.Join(t.SortedTags(), " #"))
	}

	line := fmt.Sprintf("  %s %s %s (%s)%s", checkbox, marker, name, t.Status, tags)
	if selected {
		line = m.styles.selected.Render(line)
	}
	return line
}

// detailMarkdown builds the info pane content for one task.
func detailMarkdown(t *task.Task) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "# %s\n\n", t.Name)
	fmt.Fprintf(b, "- Status: %s\n", t.Status)
	fmt.Fprintf(b, "- Urgency: %s\n", t.Urgency)
	fmt.Fprintf(b, "- Added: %s\n", t.CreatedAt.Format("Jan 02, 2006"))
	if t.CompletedOn != nil {
		fmt.Fprintf(b, "- Completed: %s\n", t.CompletedOn.Format("Jan 02, 2006"))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(b, "- Tags: %s\n", strings.Join(t.SortedTags(), ", "))
	}
	if t.Description != "" {
		fmt.Fprintf(b, "\n## Description\n\n%s\n", t.Description)
	}
	if t.Latest != "" {
		fmt.Fprintf(b, "\n## Latest\n\n%s\n", t.Latest)
	}
	return b.String()
}

// overlay centers a popup in the window.
func (m Model) overlay(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderWizard() string {
	w := m.wizard
	var b strings.Builder

	switch w.Stage {
	case wizard.StageStaging:
		b.WriteString(m.styles.prompt.Render("Update which field?") + "\n\n")
		b.WriteString(fmt.Sprintf("  1. Name         %s\n", w.Fields.TaskName()))
		b.WriteString(fmt.Sprintf("  2. Status       %s\n", w.Fields.Status))
		b.WriteString(fmt.Sprintf("  3. Urgency      %s\n", w.Fields.Urgency))
		b.WriteString(fmt.Sprintf("  4. Description  %s\n", truncate(w.Fields.Description.Content(), 24)))
		b.WriteString(fmt.Sprintf("  5. Latest       %s\n", truncate(w.Fields.Latest.Content(), 24)))
		b.WriteString(fmt.Sprintf("  6. Tags         %s\n", strings.Join(w.Fields.Tags.Sorted(), ", ")))
		b.WriteString("\n" + m.styles.help.Render("1-6: pick · esc: cancel"))

	case wizard.StageName:
		b.WriteString(m.styles.prompt.Render("Name") + "\n\n")
		b.WriteString(m.renderBuffer(w.Fields.Name))
		b.WriteString("\n\n" + m.styles.help.Render(m.textStageHelp(w)))

	case wizard.StageDescription:
		b.WriteString(m.styles.prompt.Render("Description") + "\n\n")
		b.WriteString(m.renderBuffer(w.Fields.Description))
		b.WriteString("\n\n" + m.styles.help.Render(m.textStageHelp(w)))

	case wizard.StageLatest:
		b.WriteString(m.styles.prompt.Render("Latest update") + "\n\n")
		b.WriteString(m.renderBuffer(w.Fields.Latest))
		b.WriteString("\n\n" + m.styles.help.Render(m.textStageHelp(w)))

	case wizard.StageUrgency:
		b.WriteString(m.styles.prompt.Render("Urgency") + "\n\n")
		for i, u := range []task.Urgency{task.Low, task.Medium, task.High, task.Critical} {
			line := fmt.Sprintf("  %d. %s", i+1, m.styles.urgency[u].Render(u.String()))
			if u == w.Fields.Urgency {
				line += " ←"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + m.styles.help.Render("1-4: pick · ←: back · esc: cancel"))

	case wizard.StageStatus:
		b.WriteString(m.styles.prompt.Render("Status") + "\n\n")
		for i, s := range []task.Status{task.Open, task.Working, task.Paused, task.Completed} {
			line := fmt.Sprintf("  %d. %s", i+1, s)
			if s == w.Fields.Status {
				line += " ←"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + m.styles.help.Render("1-4: pick · ←: back · esc: cancel"))

	case wizard.StageTags:
		b.WriteString(m.styles.prompt.Render("Tags") + "\n\n")
		b.WriteString(m.renderTagChips(w.Fields.Tags) + "\n\n")
		b.WriteString(m.renderBuffer(w.Fields.Tags.Input))
		b.WriteString("\n\n" + m.styles.help.Render("enter: add tag, empty to continue · ↓: select · esc: cancel"))
	}

	return m.styles.popup.Render(b.String())
}

func (m Model) textStageHelp(w *wizard.Wizard) string {
	switch w.Mode {
	case wizard.ModeUpdate:
		return "enter: save · ctrl+←: back to menu · esc: cancel"
	case wizard.ModeQuickAdd:
		return "enter: save · esc: cancel"
	}
	return "enter: next · ctrl+←: back · esc: cancel"
}

func (m Model) renderTagChips(e *wizard.TagEditor) string {
	sorted := e.Sorted()
	if len(sorted) == 0 {
		return m.styles.help.Render("  no tags yet")
	}
	chips := make([]string, len(sorted))
	for i, tag := range sorted {
		if e.Highlighting() && i == e.Highlighted() {
			chips[i] = m.styles.tagActive.Render(tag)
		} else {
			chips[i] = m.styles.tag.Render(tag)
		}
	}
	return strings.Join(chips, " ")
}

// renderBuffer paints a text buffer wrapped to the popup width, with
// the selection range highlighted and a block cursor at the caret.
func (m Model) renderBuffer(buf *textedit.Buffer) string {
	lm := textedit.Wrap(buf.Content(), popupWidth)
	curRow, curCol := lm.Position(buf.Cursor())
	selStart, selEnd, hasSel := buf.Selection()

	lines := make([]string, 0, lm.LineCount())
	for i := 0; i < lm.LineCount(); i++ {
		runes := []rune(lm.Line(i))
		start := lm.LineStart(i)

		var b strings.Builder
		for j, r := range runes {
			ch := string(r)
			switch {
			case i == curRow && j == curCol:
				ch = m.styles.cursor.Render(ch)
			case hasSel && start+j >= selStart && start+j < selEnd:
				ch = m.styles.selection.Render(ch)
			}
			b.WriteString(ch)
		}
		if i == curRow && curCol >= len(runes) {
			b.WriteString(m.styles.cursor.Render(" "))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
