package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	project := "home"
	due := NewDate(2025, time.March, 14)
	return []Task{
		{
			ID:          1,
			Description: "water plants",
			Project:     &project,
			Priority:    PriorityHigh,
			DueDate:     &due,
			CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			SubTasks: []Task{{
				ID:          10,
				Description: "fern",
				Priority:    PriorityLow,
				CreatedAt:   time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC),
				SubTasks:    []Task{},
			}},
		},
		{
			ID:          2,
			Description: "file taxes",
			Priority:    PriorityMedium,
			Completed:   true,
			CreatedAt:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			SubTasks:    []Task{},
		},
	}
}

func TestJSONTaskStoreMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()

	tasks, err := NewJSONTaskStore(filepath.Join(dir, "missing.json")).LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	tasks, err = NewJSONTaskStore(empty).LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestJSONTaskStoreRoundTrip(t *testing.T) {
	store := NewJSONTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	want := sampleTasks()

	require.NoError(t, store.SaveTasks(want))
	got, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONTaskStoreFieldNames(t *testing.T) {
	store := NewJSONTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, store.SaveTasks([]Task{{ID: 7, Description: "x", Priority: PriorityMedium}}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "Medium", raw[0]["priority"])
	assert.Nil(t, raw[0]["project"])
	assert.Nil(t, raw[0]["due_date"])
	assert.Equal(t, []any{}, raw[0]["sub_tasks"])
	for _, key := range []string{"id", "description", "completed", "created_at"} {
		assert.Contains(t, raw[0], key)
	}
}

func TestJSONTaskStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewJSONTaskStore(path).LoadTasks()
	assert.Error(t, err)
}

func TestPriorityOrderingAndText(t *testing.T) {
	assert.Less(t, PriorityLow, PriorityMedium)
	assert.Less(t, PriorityMedium, PriorityHigh)

	var p Priority
	require.NoError(t, p.UnmarshalText([]byte("High")))
	assert.Equal(t, PriorityHigh, p)
	assert.Error(t, p.UnmarshalText([]byte("urgent")))
}

func TestSQLiteTaskStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLiteTaskStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	defer store.Close()

	empty, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, empty)

	want := sampleTasks()
	require.NoError(t, store.SaveTasks(want))
	got, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// a save replaces the previous contents
	require.NoError(t, store.SaveTasks(want[1:]))
	got, err = store.LoadTasks()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestSQLiteTaskStoreKeepsOrder(t *testing.T) {
	store, err := OpenSQLiteTaskStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	defer store.Close()

	tasks := []Task{
		{ID: 9, Description: "last id first", CreatedAt: time.Unix(0, 0).UTC(), SubTasks: []Task{}},
		{ID: 3, Description: "lower id second", CreatedAt: time.Unix(0, 0).UTC(), SubTasks: []Task{}},
	}
	require.NoError(t, store.SaveTasks(tasks))
	got, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestOpenSQLiteTaskStoreEmptyPath(t *testing.T) {
	_, err := OpenSQLiteTaskStore("")
	assert.Error(t, err)
}

func TestSQLiteSchemaDeclaresAllColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	store, err := OpenSQLiteTaskStore(path)
	require.NoError(t, err)

	rows, err := store.db.Query(`SELECT name FROM pragma_table_info('tasks');`)
	require.NoError(t, err)
	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	assert.Equal(t, []string{"id", "description", "project", "priority", "due", "completed", "created_at", "sub_tasks", "position"}, cols)
	require.NoError(t, store.Close())

	// reopening an existing database keeps it usable
	store, err = OpenSQLiteTaskStore(path)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.LoadTasks()
	assert.NoError(t, err)
}
