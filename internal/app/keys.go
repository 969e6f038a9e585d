package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/config"
)

// KeyMap holds the Normal-mode bindings. Global keys come from the config;
// view keys are fixed.
type KeyMap struct {
	Command  key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Notes    key.Binding
	Calendar key.Binding
	Tasks    key.Binding

	Down        key.Binding
	Up          key.Binding
	Open        key.Binding
	New         key.Binding
	Rename      key.Binding
	Delete      key.Binding
	SwitchPane  key.Binding
	AddTag      key.Binding
	Insert      key.Binding
	Back        key.Binding
	PrevMonth   key.Binding
	NextMonth   key.Binding
	ToggleDone  key.Binding
	CloseSearch key.Binding
}

func NewKeyMap(k config.Keymap) KeyMap {
	return KeyMap{
		Command:  key.NewBinding(key.WithKeys(k.Command), key.WithHelp(k.Command, "command")),
		Search:   key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		Help:     key.NewBinding(key.WithKeys(k.Help), key.WithHelp(k.Help, "help")),
		Quit:     key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Notes:    key.NewBinding(key.WithKeys(k.Notes), key.WithHelp(k.Notes, "notes")),
		Calendar: key.NewBinding(key.WithKeys(k.Calendar), key.WithHelp(k.Calendar, "calendar")),
		Tasks:    key.NewBinding(key.WithKeys(k.Tasks), key.WithHelp(k.Tasks, "tasks")),

		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "notes/tags")),
		AddTag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add tag")),
		Insert:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		PrevMonth:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev month")),
		NextMonth:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next month")),
		ToggleDone:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		CloseSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp lists the bindings worth showing for the current view.
func (km KeyMap) ShortHelp(s *State) []key.Binding {
	switch {
	case s.Mode != ModeNormal:
		return nil
	case s.View == ViewSearch:
		return []key.Binding{km.CloseSearch}
	case s.View == ViewHelp:
		return []key.Binding{km.Help, km.Back}
	case s.View == ViewNoteList && s.Focus == FocusTagList:
		return []key.Binding{km.Down, km.Up, km.Open, km.SwitchPane, km.Help, km.Quit}
	case s.View == ViewNoteList:
		return []key.Binding{km.Down, km.Up, km.Open, km.New, km.Rename, km.Delete, km.SwitchPane, km.Help, km.Quit}
	case s.View == ViewNoteEditor:
		return []key.Binding{km.Insert, km.AddTag, km.Rename, km.Back, km.Command}
	case s.View == ViewCalendar:
		return []key.Binding{km.PrevMonth, km.NextMonth, km.Notes, km.Tasks}
	case s.View == ViewTasks:
		return []key.Binding{km.Down, km.Up, km.New, km.Delete, km.ToggleDone, km.Notes}
	}
	return nil
}

// Classify turns one key press into at most one message. It never changes
// s. The first matching layer wins: the active non-Normal mode, then the
// Search and Help views, then view bindings, then global bindings.
func (km KeyMap) Classify(s *State, k tea.KeyMsg) (Message, bool) {
	switch s.Mode {
	case ModeInsert:
		return classifyInsert(k)
	case ModeCommand:
		return classifyTextInput(k, MsgExecuteCommand)
	case ModeTitleInput:
		return classifyTextInput(k, MsgSetTitle)
	case ModeTagInput:
		return classifyTextInput(k, MsgAddTag)
	case ModeConfirmDeletion:
		return classifyConfirm(k, MsgConfirmDelete)
	case ModeConfirmQuit:
		return classifyConfirm(k, MsgForceQuit)
	}

	switch s.View {
	case ViewSearch:
		if k.Type == tea.KeyEsc {
			return message(MsgExitSearch), true
		}
		if k.Type == tea.KeyBackspace {
			return message(MsgBackspace), true
		}
		if r, ok := typed(k); ok {
			return charMsg(r...), true
		}
		return Message{}, false
	case ViewHelp:
		if key.Matches(k, km.Help, km.Back) {
			return message(MsgToggleHelp), true
		}
		return Message{}, false
	}

	if m, ok := km.classifyView(s, k); ok {
		return m, true
	}
	return km.classifyGlobal(k)
}

func (km KeyMap) classifyView(s *State, k tea.KeyMsg) (Message, bool) {
	switch s.View {
	case ViewNoteList:
		if key.Matches(k, km.SwitchPane) {
			return message(MsgToggleFocus), true
		}
		if s.Focus == FocusTagList {
			switch {
			case key.Matches(k, km.Down):
				return message(MsgNextTag), true
			case key.Matches(k, km.Up):
				return message(MsgPreviousTag), true
			case key.Matches(k, km.Open):
				return message(MsgSelectTag), true
			}
			return Message{}, false
		}
		switch {
		case key.Matches(k, km.Down):
			return message(MsgNextNote), true
		case key.Matches(k, km.Up):
			return message(MsgPreviousNote), true
		case key.Matches(k, km.Open):
			return message(MsgOpenNote), true
		case key.Matches(k, km.New):
			return message(MsgNewNote), true
		case key.Matches(k, km.Rename):
			return message(MsgRenameNote), true
		case key.Matches(k, km.Delete):
			return message(MsgDeleteNote), true
		}
	case ViewNoteEditor:
		switch {
		case key.Matches(k, km.AddTag):
			return message(MsgEnterTagInput), true
		case key.Matches(k, km.Insert):
			return message(MsgEnterInsertMode), true
		case key.Matches(k, km.Rename):
			return message(MsgRenameNote), true
		case key.Matches(k, km.Back):
			return message(MsgSwitchToNoteList), true
		}
	case ViewCalendar:
		switch {
		case key.Matches(k, km.PrevMonth):
			return message(MsgPreviousMonth), true
		case key.Matches(k, km.NextMonth):
			return message(MsgNextMonth), true
		}
	case ViewTasks:
		switch {
		case key.Matches(k, km.Down):
			return message(MsgNextTask), true
		case key.Matches(k, km.Up):
			return message(MsgPreviousTask), true
		case key.Matches(k, km.New):
			return message(MsgNewTask), true
		case key.Matches(k, km.Delete):
			return message(MsgDeleteTask), true
		case key.Matches(k, km.ToggleDone):
			return message(MsgToggleTaskComplete), true
		}
	}
	return Message{}, false
}

func (km KeyMap) classifyGlobal(k tea.KeyMsg) (Message, bool) {
	switch {
	case key.Matches(k, km.Command):
		return message(MsgEnterCommandMode), true
	case key.Matches(k, km.Search):
		return message(MsgEnterSearch), true
	case key.Matches(k, km.Help):
		return message(MsgToggleHelp), true
	case key.Matches(k, km.Quit):
		return message(MsgQuit), true
	case key.Matches(k, km.Notes):
		return message(MsgSwitchToNoteList), true
	case key.Matches(k, km.Calendar):
		return message(MsgSwitchToCalendar), true
	case key.Matches(k, km.Tasks):
		return message(MsgSwitchToTasks), true
	}
	return Message{}, false
}

func classifyInsert(k tea.KeyMsg) (Message, bool) {
	switch k.Type {
	case tea.KeyEsc:
		return message(MsgEnterNormalMode), true
	case tea.KeyEnter:
		return message(MsgNewLine), true
	case tea.KeyLeft:
		return message(MsgCursorLeft), true
	case tea.KeyRight:
		return message(MsgCursorRight), true
	case tea.KeyUp:
		return message(MsgCursorUp), true
	case tea.KeyDown:
		return message(MsgCursorDown), true
	case tea.KeyBackspace:
		return message(MsgBackspace), true
	}
	if r, ok := typed(k); ok {
		return charMsg(r...), true
	}
	return Message{}, false
}

func classifyTextInput(k tea.KeyMsg, commit Kind) (Message, bool) {
	switch k.Type {
	case tea.KeyEsc:
		return message(MsgEnterNormalMode), true
	case tea.KeyEnter:
		return message(commit), true
	case tea.KeyBackspace:
		return message(MsgBackspace), true
	}
	if r, ok := typed(k); ok {
		return charMsg(r...), true
	}
	return Message{}, false
}

func classifyConfirm(k tea.KeyMsg, confirm Kind) (Message, bool) {
	if k.Type == tea.KeyEsc {
		return message(MsgEnterNormalMode), true
	}
	if k.Type != tea.KeyRunes || len(k.Runes) != 1 || k.Alt {
		return Message{}, false
	}
	switch k.Runes[0] {
	case 'y':
		return message(confirm), true
	case 'n':
		return message(MsgEnterNormalMode), true
	}
	return Message{}, false
}

// typed extracts printable input. Alt combinations are not text.
func typed(k tea.KeyMsg) ([]rune, bool) {
	switch k.Type {
	case tea.KeyRunes:
		if k.Alt || len(k.Runes) == 0 {
			return nil, false
		}
		return k.Runes, true
	case tea.KeySpace:
		return []rune{' '}, true
	}
	return nil, false
}
