package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

const noteExt = ".md"

type NoteStore struct {
	dir    string
	logger *slog.Logger
}

func NewNoteStore(dir string, logger *slog.Logger) *NoteStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &NoteStore{dir: dir, logger: logger}
}

func (s *NoteStore) Dir() string {
	return s.dir
}

// LoadNotes reads every .md file below the notes directory. Files that
// cannot be read are skipped and logged.
func (s *NoteStore) LoadNotes() ([]Note, error) {
	var notes []Note
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return s.walkError(path, d, err)
		}
		if d.IsDir() || filepath.Ext(path) != noteExt {
			return nil
		}
		note, err := ReadNote(path)
		if err != nil {
			s.logger.Warn("skipping unreadable note", "path", path, "err", err)
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.dir, err)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	s.logger.Debug("loaded notes", "dir", s.dir, "count", len(notes))
	return notes, nil
}

// walkError fails the scan only when the notes directory itself cannot be
// read. Deeper directories and files are logged and skipped.
func (s *NoteStore) walkError(path string, d fs.DirEntry, err error) error {
	if path == s.dir {
		return err
	}
	s.logger.Warn("skipping unreadable path", "path", path, "err", err)
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

// Exists reports whether something is already stored at path. Stat errors
// other than not-exist count as taken.
func (s *NoteStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func ReadNote(path string) (Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Note{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Note{}, err
	}
	fm, body, _ := ParseFrontMatter(string(data))

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	} else {
		title = fm.Title
	}

	return Note{
		Path:      path,
		Title:     title,
		Content:   body,
		Tags:      dedupe(fm.Tags),
		CreatedAt: info.ModTime(),
		UpdatedAt: info.ModTime(),
	}, nil
}

// SaveNote overwrites the note's file in place.
func (s *NoteStore) SaveNote(n Note) error {
	data, err := EncodeNote(n.Title, n.Tags, n.Content)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(n.Path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(n.Path, data, 0o644); err != nil {
		return err
	}
	s.logger.Debug("saved note", "path", n.Path)
	return nil
}

// SaveNotes stops at the first failure.
func (s *NoteStore) SaveNotes(notes []Note) error {
	for _, n := range notes {
		if err := s.SaveNote(n); err != nil {
			s.logger.Error("save note failed", "path", n.Path, "err", err)
			return err
		}
	}
	return nil
}

// DeleteNote removes the note's file. A note that was never written counts
// as deleted.
func (s *NoteStore) DeleteNote(n Note) error {
	err := os.Remove(n.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error("delete note failed", "path", n.Path, "err", err)
		return err
	}
	s.logger.Debug("deleted note", "path", n.Path)
	return nil
}

// NewNotePath builds <sanitized title>_<unix seconds>.md inside the notes
// directory. Only letters, digits and spaces survive; spaces become
// underscores.
func (s *NoteStore) NewNotePath(title string, at time.Time) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", b.String(), at.Unix(), noteExt))
}

func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
