package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/app"
	"quill/internal/config"
	"quill/internal/storage"
)

type nopNotes struct{}

func (nopNotes) SaveNotes([]storage.Note) error               { return nil }
func (nopNotes) DeleteNote(storage.Note) error                { return nil }
func (nopNotes) NewNotePath(title string, _ time.Time) string { return title + ".md" }
func (nopNotes) Exists(string) bool                           { return false }

type nopTasks struct{}

func (nopTasks) SaveTasks([]storage.Task) error { return nil }

func newTestModel() Model {
	state := app.NewState("notes", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC))
	return New(state, app.NewKeyMap(config.DefaultKeymap()), app.NewReducer(nopNotes{}, nopTasks{}, nil), nil)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestUpdateQuitsWhenClean(t *testing.T) {
	m := newTestModel()
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdateAsksBeforeQuittingDirty(t *testing.T) {
	m := newTestModel()
	m.state.Dirty = true

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Nil(t, cmd)
	assert.Equal(t, app.ModeConfirmQuit, m.state.Mode)

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdateIgnoresUnboundKeys(t *testing.T) {
	m := newTestModel()
	before := *m.state
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	assert.Nil(t, cmd)
	assert.Equal(t, before.View, m.state.View)
	assert.Equal(t, before.Mode, m.state.Mode)
}

func TestViewRendersEveryScreen(t *testing.T) {
	m := newTestModel()
	for _, v := range []app.View{app.ViewNoteList, app.ViewNoteEditor, app.ViewCalendar, app.ViewTasks, app.ViewSearch, app.ViewHelp} {
		m.state.View = v
		assert.NotEmpty(t, m.View(), v.String())
	}
	m.state.View = app.ViewNoteList
	assert.Contains(t, m.View(), "Sample Note")
}

func TestDailyNoteDays(t *testing.T) {
	notes := []storage.Note{
		{Path: filepath.Join("n", storage.DailyNotesDirName, "2024-03-09.md")},
		{Path: filepath.Join("n", storage.DailyNotesDirName, "2024-03-21.md")},
		{Path: filepath.Join("n", storage.DailyNotesDirName, "2024-04-01.md")},
		{Path: filepath.Join("n", storage.DailyNotesDirName, "groceries.md")},
		{Path: filepath.Join("n", "2024-03-10.md")},
	}
	assert.Equal(t, map[int]bool{9: true, 21: true}, dailyNoteDays(notes, 2024, time.March))
}

func TestRenderCalendar(t *testing.T) {
	out := renderCalendar(nil, 2024, time.February, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, out, "February 2024")
	assert.Contains(t, out, "29")
	assert.NotContains(t, out, "30")
}

func TestRenderContentCursor(t *testing.T) {
	assert.Equal(t, "ab", renderContent("ab", 1, false))
	assert.Contains(t, renderContent("ab\ncd", 2, true), "ab")
	assert.Contains(t, renderContent("ab\ncd", 2, true), "cd")
}
