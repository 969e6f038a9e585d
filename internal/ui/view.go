package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/app"
	"quill/internal/editor"
	"quill/internal/storage"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.state.View {
	case app.ViewNoteList:
		b.WriteString(m.renderNoteList())
	case app.ViewNoteEditor:
		b.WriteString(m.renderEditor())
	case app.ViewCalendar:
		b.WriteString(renderCalendar(m.state.Notes, m.state.CalendarYear, m.state.CalendarMonth, time.Now()))
	case app.ViewTasks:
		b.WriteString(m.renderTasks())
	case app.ViewSearch:
		b.WriteString(m.renderSearch())
	case app.ViewHelp:
		b.WriteString(m.renderHelp())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp(m.state)))

	return b.String()
}

func (m Model) renderHeader() string {
	tabs := []app.View{app.ViewNoteList, app.ViewCalendar, app.ViewTasks}
	parts := []string{titleStyle.Render("quill")}
	for _, v := range tabs {
		style := tabStyle
		if v == m.state.View || (v == app.ViewNoteList && m.state.View == app.ViewNoteEditor) {
			style = activeTab
		}
		parts = append(parts, style.Render(v.String()))
	}
	if m.state.Dirty {
		parts = append(parts, dimStyle.Render("[+]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderNoteList() string {
	s := m.state

	var notes strings.Builder
	header := "Notes"
	if s.ActiveTag != "" {
		header = fmt.Sprintf("Notes #%s", s.ActiveTag)
	}
	notes.WriteString(titleStyle.Render(header) + "\n")
	visible := s.VisibleNotes()
	if len(visible) == 0 {
		notes.WriteString(dimStyle.Render("No notes yet. Press 'a' to add one."))
	}
	for _, i := range visible {
		notes.WriteString(listLine(i == s.SelectedNote, s.Notes[i].Title) + "\n")
	}

	var tags strings.Builder
	tags.WriteString(titleStyle.Render("Tags") + "\n")
	if len(s.Tags) == 0 {
		tags.WriteString(dimStyle.Render("(none)"))
	}
	for i, t := range s.Tags {
		label := "#" + t
		if t == s.ActiveTag {
			label += " *"
		}
		tags.WriteString(listLine(i == s.SelectedTag && s.Focus == app.FocusTagList, label) + "\n")
	}

	notePane, tagPane := paneStyle, paneStyle
	if s.Focus == app.FocusTagList {
		tagPane = focusedPane
	} else {
		notePane = focusedPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		notePane.Width(m.paneWidth(2, 3)).Render(strings.TrimRight(notes.String(), "\n")),
		tagPane.Width(m.paneWidth(1, 3)).Render(strings.TrimRight(tags.String(), "\n")),
	)
}

func (m Model) renderEditor() string {
	n := m.state.SelectedNoteRef()
	if n == nil {
		return dimStyle.Render("No note selected")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(n.Title))
	if len(n.Tags) > 0 {
		b.WriteString("  " + dimStyle.Render("#"+strings.Join(n.Tags, " #")))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(filepath.Base(n.Path)))
	b.WriteString("\n\n")
	b.WriteString(renderContent(n.Content, m.state.CursorOffset, m.state.Mode == app.ModeInsert))
	return b.String()
}

// renderContent draws the body with a block cursor at offset. A cursor on a
// newline or past the end is drawn as a highlighted space.
func renderContent(content string, offset int, showCursor bool) string {
	if !showCursor {
		return content
	}
	runes := []rune(content)
	offset = editor.Clamp(content, offset)
	if offset < len(runes) && runes[offset] != '\n' {
		return string(runes[:offset]) + cursorStyle.Render(string(runes[offset])) + string(runes[offset+1:])
	}
	return string(runes[:offset]) + cursorStyle.Render(" ") + string(runes[offset:])
}

func (m Model) renderTasks() string {
	s := m.state
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks") + "\n")
	if len(s.Tasks) == 0 {
		b.WriteString(dimStyle.Render("No tasks yet. Press 'a' to add one."))
		return b.String()
	}
	for i, t := range s.Tasks {
		b.WriteString(listLine(i == s.SelectedTask, taskLine(t)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func taskLine(t storage.Task) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	body := fmt.Sprintf("%s #%d %s", checkbox, t.ID, t.Description)
	var meta []string
	if t.Project != nil && strings.TrimSpace(*t.Project) != "" {
		meta = append(meta, "project:"+*t.Project)
	}
	meta = append(meta, "priority:"+t.Priority.String())
	if t.DueDate != nil {
		meta = append(meta, "due:"+t.DueDate.String())
	}
	if len(t.SubTasks) > 0 {
		meta = append(meta, fmt.Sprintf("subtasks:%d", len(t.SubTasks)))
	}
	if t.Completed {
		body = doneStyle.Render(body)
	}
	return body + " " + dimStyle.Render(strings.Join(meta, " • "))
}

func (m Model) renderSearch() string {
	s := m.state
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search: ") + s.SearchQuery + cursorStyle.Render(" ") + "\n\n")
	switch {
	case strings.TrimSpace(s.SearchQuery) == "":
		b.WriteString(dimStyle.Render("Type to search titles, bodies and tags."))
	case len(s.SearchResults) == 0:
		b.WriteString(dimStyle.Render("No matches"))
	}
	for _, i := range s.SearchResults {
		n := s.Notes[i]
		b.WriteString("  " + n.Title + " " + dimStyle.Render(firstLine(n.Content)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHelp() string {
	km := m.keys
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Global", []key.Binding{km.Command, km.Search, km.Help, km.Quit, km.Notes, km.Calendar, km.Tasks}},
		{"Notes", []key.Binding{km.Down, km.Up, km.Open, km.New, km.Rename, km.Delete, km.SwitchPane}},
		{"Editor", []key.Binding{km.Insert, km.AddTag, km.Rename, km.Back}},
		{"Calendar", []key.Binding{km.PrevMonth, km.NextMonth}},
		{"Tasks", []key.Binding{km.New, km.Delete, km.ToggleDone}},
	}

	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(titleStyle.Render(sec.title) + "\n")
		for _, kb := range sec.bindings {
			h := kb.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("Commands: :w save • :q quit • :wq save and quit"))
	return b.String()
}

func (m Model) renderStatus() string {
	s := m.state
	mode := modeStyle.Render(s.Mode.String())

	switch s.Mode {
	case app.ModeCommand, app.ModeTitleInput, app.ModeTagInput:
		in := m.input
		in.Prompt = promptFor(s)
		in.SetValue(strings.TrimPrefix(s.CommandInput, promptPrefix(s)))
		in.CursorEnd()
		return mode + " " + in.View()
	}

	line := mode + " " + statusText(s.StatusMessage)
	if s.View == app.ViewNoteEditor {
		if n := s.SelectedNoteRef(); n != nil {
			ln, col := editor.Position(n.Content, s.CursorOffset)
			line += "  " + dimStyle.Render(fmt.Sprintf("Ln %d, Col %d", ln+1, col+1))
		}
	}
	return line
}

func statusText(msg string) string {
	if strings.HasPrefix(msg, "Error") {
		return errorStyle.Render(msg)
	}
	return statusStyle.Render(msg)
}

func promptFor(s *app.State) string {
	switch s.Mode {
	case app.ModeCommand:
		return ":"
	case app.ModeTagInput:
		return "Add Tag: "
	default:
		return s.Prompt.Label()
	}
}

func promptPrefix(s *app.State) string {
	if s.Mode == app.ModeCommand {
		return ":"
	}
	return ""
}

func listLine(selected bool, text string) string {
	if selected {
		return selectedStyle.Render("> " + text)
	}
	return "  " + text
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	if r := []rune(line); len(r) > 40 {
		return string(r[:40]) + "…"
	}
	return line
}

func (m Model) paneWidth(num, den int) int {
	if m.width <= 0 {
		return 30 * num
	}
	return max(m.width*num/den-4, 10)
}
