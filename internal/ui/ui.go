package ui

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/app"
)

// Model adapts the app state machine to bubbletea. Every key press is
// classified and applied in Update; View only reads the state.
type Model struct {
	state   *app.State
	keys    app.KeyMap
	reducer *app.Reducer
	logger  *slog.Logger
	input   textinput.Model
	help    help.Model
	width   int
	height  int
}

func New(state *app.State, keys app.KeyMap, reducer *app.Reducer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return Model{
		state:   state,
		keys:    keys,
		reducer: reducer,
		logger:  logger,
		input:   ti,
		help:    help.New(),
	}
}

func Run(state *app.State, keys app.KeyMap, reducer *app.Reducer, logger *slog.Logger) error {
	program := tea.NewProgram(New(state, keys, reducer, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-20, 10)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	message, ok := m.keys.Classify(m.state, k)
	if !ok {
		return m, nil
	}
	m.logger.Debug("apply", "key", k.String(), "kind", int(message.Kind), "mode", m.state.Mode, "view", m.state.View)
	m.reducer.Apply(m.state, message)
	if !m.state.Running {
		m.logger.Info("quitting")
		return m, tea.Quit
	}
	return m, nil
}
