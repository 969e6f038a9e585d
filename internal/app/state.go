package app

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"quill/internal/selection"
	"quill/internal/storage"
)

// Mode decides how key presses are interpreted. Exactly one is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeTitleInput
	ModeTagInput
	ModeConfirmDeletion
	ModeConfirmQuit
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeTitleInput:
		return "TITLE"
	case ModeTagInput:
		return "TAG"
	case ModeConfirmDeletion:
		return "CONFIRM DELETE"
	case ModeConfirmQuit:
		return "CONFIRM QUIT"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type View int

const (
	ViewNoteList View = iota
	ViewNoteEditor
	ViewCalendar
	ViewTasks
	ViewSearch
	ViewHelp
)

func (v View) String() string {
	switch v {
	case ViewNoteList:
		return "Notes"
	case ViewNoteEditor:
		return "Editor"
	case ViewCalendar:
		return "Calendar"
	case ViewTasks:
		return "Tasks"
	case ViewSearch:
		return "Search"
	case ViewHelp:
		return "Help"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Focus selects which pane of the note list view receives j/k/enter.
type Focus int

const (
	FocusNoteList Focus = iota
	FocusTagList
)

// Prompt records what committing TitleInput will do.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptNewNote
	PromptRenameNote
	PromptNewTask
)

func (p Prompt) Label() string {
	switch p {
	case PromptNewNote:
		return "New note title: "
	case PromptRenameNote:
		return "Rename note to: "
	case PromptNewTask:
		return "New Task: "
	default:
		return ""
	}
}

// State is owned by the control loop and only changed through Reducer.Apply.
type State struct {
	Notes []storage.Note
	Tasks []storage.Task
	Tags  []string

	Mode   Mode
	View   View
	Focus  Focus
	Prompt Prompt
	// PreviousView is a single slot, overwritten on every push.
	PreviousView *View

	// Selections are indexes into Notes, Tags and Tasks, or selection.None.
	SelectedNote int
	SelectedTag  int
	SelectedTask int
	// CursorOffset is a rune index into the selected note's content.
	CursorOffset int

	// CommandInput is shared by Command, TitleInput and TagInput.
	CommandInput  string
	StatusMessage string
	Dirty         bool
	Running       bool

	ActiveTag     string
	SearchQuery   string
	SearchResults []int

	CalendarYear  int
	CalendarMonth time.Month

	// lastTaskID only grows, so ids of deleted tasks are never handed out
	// again within a session.
	lastTaskID int
}

// NoteLoader and TaskLoader are read once at startup.
type NoteLoader interface {
	LoadNotes() ([]storage.Note, error)
	Dir() string
}

type TaskLoader interface {
	LoadTasks() ([]storage.Task, error)
}

func NewState(notesDir string, now time.Time) *State {
	s := &State{
		Notes:         SampleNotes(notesDir, now),
		Tasks:         SampleTasks(now),
		Mode:          ModeNormal,
		View:          ViewNoteList,
		SelectedNote:  selection.None,
		SelectedTag:   selection.None,
		SelectedTask:  selection.None,
		StatusMessage: "Welcome to quill! Press 'q' to quit.",
		Running:       true,
		CalendarYear:  now.Year(),
		CalendarMonth: now.Month(),
	}
	s.SelectedNote = selection.Clamp(0, len(s.Notes))
	s.refreshTags()
	return s
}

// Load builds the startup state. Whatever fails to load is replaced by the
// sample data and reported in the status line.
func Load(notes NoteLoader, tasks TaskLoader, now time.Time) *State {
	s := NewState(notes.Dir(), now)

	var errs []string
	if loaded, err := notes.LoadNotes(); err != nil {
		errs = append(errs, fmt.Sprintf("notes (%v)", err))
	} else {
		s.Notes = loaded
	}
	if loaded, err := tasks.LoadTasks(); err != nil {
		errs = append(errs, fmt.Sprintf("tasks (%v)", err))
	} else {
		s.Tasks = loaded
	}
	if len(errs) > 0 {
		s.StatusMessage = fmt.Sprintf("Error loading %s. Using sample data.", strings.Join(errs, ", "))
	}

	s.SelectedNote = selection.Clamp(0, len(s.Notes))
	s.refreshTags()
	for _, t := range s.Tasks {
		s.lastTaskID = max(s.lastTaskID, t.ID)
	}
	return s
}

func SampleNotes(notesDir string, now time.Time) []storage.Note {
	return []storage.Note{
		{
			Path:      filepath.Join(notesDir, "sample-note.md"),
			Title:     "Sample Note",
			Content:   "This is the content of the sample note.",
			Tags:      []string{"sample", "quill"},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Path:      filepath.Join(notesDir, storage.DailyNotesDirName, now.Format(storage.DateLayout)+".md"),
			Title:     "Daily Note for today",
			Content:   "This is a sample daily note for today.",
			Tags:      []string{"daily"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func SampleTasks(now time.Time) []storage.Task {
	project := "quill"
	return []storage.Task{
		{ID: 1, Description: "Try the task list view", Project: &project, Priority: storage.PriorityHigh, CreatedAt: now},
		{ID: 2, Description: "Add sample data", Project: &project, Priority: storage.PriorityMedium, Completed: true, CreatedAt: now},
	}
}

// SelectedNoteRef returns the selected note, or nil.
func (s *State) SelectedNoteRef() *storage.Note {
	if !selection.Valid(s.SelectedNote, len(s.Notes)) {
		return nil
	}
	return &s.Notes[s.SelectedNote]
}

// VisibleNotes lists indexes of the notes shown under the active tag filter.
func (s *State) VisibleNotes() []int {
	out := make([]int, 0, len(s.Notes))
	for i, n := range s.Notes {
		if s.ActiveTag == "" || n.HasTag(s.ActiveTag) {
			out = append(out, i)
		}
	}
	return out
}

func (s *State) refreshTags() {
	var tags []string
	for _, n := range s.Notes {
		tags = append(tags, n.Tags...)
	}
	slices.Sort(tags)
	s.Tags = slices.Compact(tags)
	if s.ActiveTag != "" && !slices.Contains(s.Tags, s.ActiveTag) {
		s.ActiveTag = ""
	}
	if s.SelectedTag != selection.None {
		s.SelectedTag = selection.Clamp(s.SelectedTag, len(s.Tags))
	}
}

func (s *State) nextTaskID() int {
	for _, t := range s.Tasks {
		s.lastTaskID = max(s.lastTaskID, t.ID)
	}
	s.lastTaskID++
	return s.lastTaskID
}
