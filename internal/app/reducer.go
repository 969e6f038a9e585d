package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"quill/internal/editor"
	"quill/internal/selection"
	"quill/internal/storage"
)

type NoteStore interface {
	SaveNotes(notes []storage.Note) error
	DeleteNote(n storage.Note) error
	NewNotePath(title string, at time.Time) string
	Exists(path string) bool
}

type TaskStore interface {
	SaveTasks(tasks []storage.Task) error
}

const insertStatus = "-- INSERT --"

// Reducer applies messages to State. It is the only code that mutates
// State, and each Apply runs to completion before the next message.
type Reducer struct {
	notes  NoteStore
	tasks  TaskStore
	logger *slog.Logger
	now    func() time.Time
}

func NewReducer(notes NoteStore, tasks TaskStore, logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reducer{notes: notes, tasks: tasks, logger: logger, now: time.Now}
}

func (r *Reducer) Apply(s *State, m Message) {
	switch m.Kind {
	case MsgQuit:
		if s.Dirty {
			s.Mode = ModeConfirmQuit
			s.StatusMessage = "You have unsaved changes. Quit without saving? (y/n)"
			return
		}
		s.Running = false
	case MsgForceQuit:
		s.Running = false
	case MsgSwitchToNoteList:
		s.View = ViewNoteList
	case MsgSwitchToCalendar:
		s.View = ViewCalendar
	case MsgSwitchToTasks:
		s.View = ViewTasks
	case MsgPreviousMonth:
		s.shiftMonth(-1)
	case MsgNextMonth:
		s.shiftMonth(1)
	case MsgSave:
		r.save(s)
	case MsgEnterInsertMode:
		s.Mode = ModeInsert
		if n := s.SelectedNoteRef(); n != nil {
			s.CursorOffset = editor.Len(n.Content)
		}
		s.StatusMessage = insertStatus
	case MsgEnterNormalMode:
		s.enterNormal()
	case MsgEnterCommandMode:
		s.Mode = ModeCommand
		s.CommandInput = ":"
		s.StatusMessage = s.CommandInput
	case MsgExecuteCommand:
		r.executeCommand(s)
	case MsgChar:
		r.typeRunes(s, m.Runes)
	case MsgBackspace:
		r.backspace(s)
	case MsgEnterSearch:
		s.View = ViewSearch
		s.SearchQuery = ""
		s.StatusMessage = "/"
		s.updateSearchResults()
	case MsgExitSearch:
		s.View = ViewNoteList
		s.SearchQuery = ""
		s.SearchResults = nil
		s.StatusMessage = ""
	case MsgPreviousNote:
		s.SelectedNote = selection.PreviousIn(s.SelectedNote, s.VisibleNotes())
		s.CursorOffset = 0
	case MsgNextNote:
		s.SelectedNote = selection.NextIn(s.SelectedNote, s.VisibleNotes())
		s.CursorOffset = 0
	case MsgOpenNote:
		if s.SelectedNoteRef() != nil {
			s.CursorOffset = 0
			s.View = ViewNoteEditor
			s.StatusMessage = ""
		}
	case MsgNewNote:
		s.startPrompt(PromptNewNote, "")
	case MsgNewTask:
		s.startPrompt(PromptNewTask, "")
	case MsgRenameNote:
		if n := s.SelectedNoteRef(); n != nil {
			s.startPrompt(PromptRenameNote, n.Title)
		}
	case MsgSetTitle:
		r.commitTitle(s)
	case MsgDeleteNote:
		if n := s.SelectedNoteRef(); n != nil {
			s.Mode = ModeConfirmDeletion
			s.StatusMessage = fmt.Sprintf("Delete '%s'? (y/n)", n.Title)
		}
	case MsgDeleteTask:
		if selection.Valid(s.SelectedTask, len(s.Tasks)) {
			s.Mode = ModeConfirmDeletion
			s.StatusMessage = fmt.Sprintf("Delete '%s'? (y/n)", s.Tasks[s.SelectedTask].Description)
		}
	case MsgConfirmDelete:
		r.confirmDelete(s)
	case MsgToggleHelp:
		s.toggleHelp()
	case MsgEnterTagInput:
		s.Mode = ModeTagInput
		s.CommandInput = ""
		s.StatusMessage = "Add Tag: "
	case MsgAddTag:
		tag := strings.TrimSpace(s.CommandInput)
		if n := s.SelectedNoteRef(); n != nil && n.AddTag(tag) {
			s.Dirty = true
			s.refreshTags()
		}
		s.enterNormal()
	case MsgToggleFocus:
		if s.Focus == FocusNoteList {
			s.Focus = FocusTagList
		} else {
			s.Focus = FocusNoteList
		}
	case MsgPreviousTag:
		s.SelectedTag = selection.Previous(s.SelectedTag, len(s.Tags))
	case MsgNextTag:
		s.SelectedTag = selection.Next(s.SelectedTag, len(s.Tags))
	case MsgSelectTag:
		s.selectTag()
	case MsgNewLine:
		if s.Mode == ModeInsert {
			s.insertRune('\n')
		}
	case MsgCursorLeft:
		s.CursorOffset = editor.MoveLeft(s.selectedContent(), s.CursorOffset)
	case MsgCursorRight:
		s.CursorOffset = editor.MoveRight(s.selectedContent(), s.CursorOffset)
	case MsgCursorUp:
		s.CursorOffset = editor.MoveUp(s.selectedContent(), s.CursorOffset)
	case MsgCursorDown:
		s.CursorOffset = editor.MoveDown(s.selectedContent(), s.CursorOffset)
	case MsgPreviousTask:
		s.SelectedTask = selection.Previous(s.SelectedTask, len(s.Tasks))
	case MsgNextTask:
		s.SelectedTask = selection.Next(s.SelectedTask, len(s.Tasks))
	case MsgToggleTaskComplete:
		if selection.Valid(s.SelectedTask, len(s.Tasks)) {
			s.Tasks[s.SelectedTask].Completed = !s.Tasks[s.SelectedTask].Completed
			r.saveTasks(s)
		}
	default:
		r.logger.Warn("unhandled message", "kind", int(m.Kind))
	}
}

func (r *Reducer) save(s *State) {
	if !s.Dirty {
		s.StatusMessage = "No changes to save."
		return
	}
	if err := r.notes.SaveNotes(s.Notes); err != nil {
		r.logger.Error("save notes", "err", err)
		s.StatusMessage = fmt.Sprintf("Error saving notes: %v", err)
		return
	}
	now := r.now()
	for i := range s.Notes {
		s.Notes[i].UpdatedAt = now
	}
	s.Dirty = false
	s.StatusMessage = "Notes saved successfully!"
	s.refreshTags()
}

func (r *Reducer) saveTasks(s *State) {
	if err := r.tasks.SaveTasks(s.Tasks); err != nil {
		r.logger.Error("save tasks", "err", err)
		s.StatusMessage = fmt.Sprintf("Error auto-saving tasks: %v", err)
	}
}

func (r *Reducer) typeRunes(s *State, runes []rune) {
	switch s.Mode {
	case ModeInsert:
		for _, c := range runes {
			s.insertRune(c)
		}
	case ModeCommand:
		s.CommandInput += string(runes)
		s.StatusMessage = s.CommandInput
	case ModeTitleInput:
		s.CommandInput += string(runes)
		s.StatusMessage = s.Prompt.Label() + s.CommandInput
	case ModeTagInput:
		s.CommandInput += string(runes)
		s.StatusMessage = "Add Tag: " + s.CommandInput
	case ModeNormal:
		if s.View == ViewSearch {
			s.SearchQuery += string(runes)
			s.updateSearchResults()
			s.StatusMessage = "/" + s.SearchQuery
		}
	}
}

func (r *Reducer) backspace(s *State) {
	switch s.Mode {
	case ModeInsert:
		if n := s.SelectedNoteRef(); n != nil {
			n.Content, s.CursorOffset = editor.DeleteBefore(n.Content, s.CursorOffset)
		}
	case ModeCommand:
		s.CommandInput = dropLastRune(s.CommandInput)
		if s.CommandInput == "" {
			s.enterNormal()
			return
		}
		s.StatusMessage = s.CommandInput
	case ModeTitleInput:
		s.CommandInput = dropLastRune(s.CommandInput)
		s.StatusMessage = s.Prompt.Label() + s.CommandInput
	case ModeTagInput:
		s.CommandInput = dropLastRune(s.CommandInput)
		s.StatusMessage = "Add Tag: " + s.CommandInput
	case ModeNormal:
		if s.View == ViewSearch {
			s.SearchQuery = dropLastRune(s.SearchQuery)
			s.updateSearchResults()
			s.StatusMessage = "/" + s.SearchQuery
		}
	}
}

func (r *Reducer) commitTitle(s *State) {
	input := strings.TrimSpace(s.CommandInput)
	if input == "" {
		s.enterNormal()
		s.StatusMessage = "Input cannot be empty"
		return
	}

	switch s.Prompt {
	case PromptRenameNote:
		if n := s.SelectedNoteRef(); n != nil {
			n.Title = input
			s.Dirty = true
		}
		s.enterNormal()
	case PromptNewNote:
		now := r.now()
		s.Notes = append(s.Notes, storage.Note{
			Path:      r.uniqueNotePath(s, input, now),
			Title:     input,
			CreatedAt: now,
			UpdatedAt: now,
		})
		s.SelectedNote = len(s.Notes) - 1
		s.CursorOffset = 0
		s.Dirty = true
		s.View = ViewNoteEditor
		s.Mode = ModeInsert
		s.Prompt = PromptNone
		s.CommandInput = ""
		s.StatusMessage = insertStatus
	case PromptNewTask:
		s.Tasks = append(s.Tasks, storage.Task{
			ID:          s.nextTaskID(),
			Description: input,
			Priority:    storage.PriorityMedium,
			CreatedAt:   r.now().UTC(),
		})
		s.SelectedTask = len(s.Tasks) - 1
		s.enterNormal()
		r.saveTasks(s)
	default:
		s.enterNormal()
	}
}

func (r *Reducer) confirmDelete(s *State) {
	s.enterNormal()
	switch s.View {
	case ViewNoteList:
		idx := s.SelectedNote
		if !selection.Valid(idx, len(s.Notes)) {
			return
		}
		note := s.Notes[idx]
		if err := r.notes.DeleteNote(note); err != nil {
			s.StatusMessage = fmt.Sprintf("Error deleting note: %v", err)
			return
		}
		s.Notes = slices.Delete(s.Notes, idx, idx+1)
		s.SelectedNote = selection.AfterRemove(idx, len(s.Notes))
		s.CursorOffset = 0
		s.Dirty = true
		s.refreshTags()
		if s.ActiveTag != "" && s.SelectedNoteRef() != nil && !s.SelectedNoteRef().HasTag(s.ActiveTag) {
			s.SelectedNote = firstOr(s.VisibleNotes(), selection.None)
		}
		s.StatusMessage = fmt.Sprintf("'%s' deleted.", note.Title)
	case ViewTasks:
		idx := s.SelectedTask
		if !selection.Valid(idx, len(s.Tasks)) {
			return
		}
		removed := s.Tasks[idx]
		s.Tasks = slices.Delete(s.Tasks, idx, idx+1)
		s.SelectedTask = selection.AfterRemove(idx, len(s.Tasks))
		s.StatusMessage = fmt.Sprintf("'%s' deleted.", removed.Description)
		r.saveTasks(s)
	}
}

// uniqueNotePath appends _2, _3, ... to the generated path until no note in
// memory or on disk uses it.
func (r *Reducer) uniqueNotePath(s *State, title string, at time.Time) string {
	base := r.notes.NewNotePath(title, at)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	path := base
	for n := 2; r.pathTaken(s, path); n++ {
		path = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	return path
}

func (r *Reducer) pathTaken(s *State, path string) bool {
	for _, n := range s.Notes {
		if n.Path == path {
			return true
		}
	}
	return r.notes.Exists(path)
}

func (s *State) enterNormal() {
	if s.Mode == ModeInsert {
		s.Dirty = true
	}
	s.Mode = ModeNormal
	s.Prompt = PromptNone
	s.CommandInput = ""
	s.StatusMessage = ""
}

func (s *State) startPrompt(p Prompt, initial string) {
	s.Mode = ModeTitleInput
	s.Prompt = p
	s.CommandInput = initial
	s.StatusMessage = p.Label() + initial
}

func (s *State) toggleHelp() {
	if s.View == ViewHelp {
		if s.PreviousView != nil {
			s.View = *s.PreviousView
		} else {
			s.View = ViewNoteList
		}
		s.PreviousView = nil
		return
	}
	prev := s.View
	s.PreviousView = &prev
	s.View = ViewHelp
}

func (s *State) selectTag() {
	if !selection.Valid(s.SelectedTag, len(s.Tags)) {
		return
	}
	tag := s.Tags[s.SelectedTag]
	if s.ActiveTag == tag {
		s.ActiveTag = ""
	} else {
		s.ActiveTag = tag
	}
	s.SelectedNote = firstOr(s.VisibleNotes(), selection.None)
	s.CursorOffset = 0
}

func (s *State) shiftMonth(delta int) {
	t := time.Date(s.CalendarYear, s.CalendarMonth+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	s.CalendarYear, s.CalendarMonth = t.Year(), t.Month()
}

func (s *State) insertRune(c rune) {
	if n := s.SelectedNoteRef(); n != nil {
		n.Content, s.CursorOffset = editor.InsertChar(n.Content, s.CursorOffset, c)
	}
}

func (s *State) selectedContent() string {
	if n := s.SelectedNoteRef(); n != nil {
		return n.Content
	}
	return ""
}

func dropLastRune(v string) string {
	r := []rune(v)
	if len(r) == 0 {
		return v
	}
	return string(r[:len(r)-1])
}

func firstOr(xs []int, def int) int {
	if len(xs) == 0 {
		return def
	}
	return xs[0]
}
