package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/config"
	"quill/internal/storage"
)

func TestNewFlags(t *testing.T) {
	cmd := New()
	require.NoError(t, cmd.ParseFlags([]string{"--config", "/tmp/q.toml", "--debug"}))

	path, err := cmd.Flags().GetString("config")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/q.toml", path)
	debug, err := cmd.Flags().GetBool("debug")
	require.NoError(t, err)
	assert.True(t, debug)
}

func TestOpenTaskStore(t *testing.T) {
	dir := t.TempDir()

	s, err := openTaskStore(config.Config{TaskBackend: config.BackendJSON, TasksFile: filepath.Join(dir, "tasks.json")})
	require.NoError(t, err)
	assert.IsType(t, &storage.JSONTaskStore{}, s)
	require.NoError(t, s.Close())

	s, err = openTaskStore(config.Config{TaskBackend: config.BackendSQLite, DBPath: filepath.Join(dir, "tasks.db")})
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteTaskStore{}, s)
	require.NoError(t, s.SaveTasks([]storage.Task{{ID: 1, Description: "x", SubTasks: []storage.Task{}}}))
	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	require.NoError(t, s.Close())
}

func TestOpenLogCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quill.log")
	f, err := openLog(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
