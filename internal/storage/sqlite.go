package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteTaskStore is the alternative task backend. Each save replaces every
// row so the table always mirrors the in-memory list.
type SQLiteTaskStore struct {
	db *sql.DB
}

func OpenSQLiteTaskStore(dbPath string) (*SQLiteTaskStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteTaskStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteTaskStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteTaskStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	project TEXT DEFAULT NULL,
	priority TEXT NOT NULL DEFAULT 'Medium',
	due TEXT DEFAULT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	sub_tasks TEXT NOT NULL DEFAULT '[]',
	position INTEGER NOT NULL DEFAULT 0
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteTaskStore) LoadTasks() ([]Task, error) {
	rows, err := s.db.Query(`SELECT id, description, project, priority, due, completed, created_at, sub_tasks FROM tasks ORDER BY position, id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		var project, due sql.NullString
		var priority, createdStr, subTasks string
		var completed int

		if err := rows.Scan(&t.ID, &t.Description, &project, &priority, &due, &completed, &createdStr, &subTasks); err != nil {
			return nil, err
		}
		if project.Valid {
			p := project.String
			t.Project = &p
		}
		if t.Priority, err = ParsePriority(priority); err != nil {
			return nil, fmt.Errorf("task %d: %w", t.ID, err)
		}
		if due.Valid {
			if parsed, err := time.Parse(DateLayout, due.String); err == nil {
				t.DueDate = &Date{parsed}
			}
		}
		t.Completed = completed == 1
		if created, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
			t.CreatedAt = created
		}
		if err := json.Unmarshal([]byte(subTasks), &t.SubTasks); err != nil {
			return nil, fmt.Errorf("task %d sub_tasks: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLiteTaskStore) SaveTasks(tasks []Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	for i, t := range tasks {
		project := sql.NullString{}
		if t.Project != nil {
			project = sql.NullString{String: *t.Project, Valid: true}
		}
		due := sql.NullString{}
		if t.DueDate != nil {
			due = sql.NullString{String: t.DueDate.String(), Valid: true}
		}
		completed := 0
		if t.Completed {
			completed = 1
		}
		subTasks := t.SubTasks
		if subTasks == nil {
			subTasks = []Task{}
		}
		sub, err := json.Marshal(subTasks)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO tasks (id, description, project, priority, due, completed, created_at, sub_tasks, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			t.ID, t.Description, project, t.Priority.String(), due, completed, t.CreatedAt.UTC().Format(time.RFC3339Nano), string(sub), i)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
