package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"quill/internal/app"
	"quill/internal/config"
	"quill/internal/storage"
	"quill/internal/ui"
)

type options struct {
	configPath string
	debug      bool
}

type taskStore interface {
	app.TaskLoader
	app.TaskStore
	Close() error
}

func New() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Notes and tasks in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}
	cmd.Flags().StringVar(&o.configPath, "config", "", "path to config.toml (default ~/.config/quill/config.toml)")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "log at debug level")
	return cmd
}

func run(o *options) error {
	root, err := config.ResolveRoot()
	if err != nil {
		return err
	}
	path := o.configPath
	if path == "" {
		path = config.ResolveConfigPath(root)
	}
	cfg, err := config.LoadOrCreate(path, root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.SlogLevel()
	if o.debug {
		level = slog.LevelDebug
	}
	logOut, err := openLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logOut.Close()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	logger.Info("starting", "config", path, "notes", cfg.NotesDir, "backend", cfg.TaskBackend)

	if err := storage.EnsureLayout(cfg.NotesDir, cfg.TasksFile); err != nil {
		return fmt.Errorf("failed to create storage layout: %w", err)
	}

	tasks, err := openTaskStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open task store: %w", err)
	}
	defer tasks.Close()

	notes := storage.NewNoteStore(cfg.NotesDir, logger)
	state := app.Load(notes, tasks, time.Now())
	reducer := app.NewReducer(notes, tasks, logger)

	if err := ui.Run(state, app.NewKeyMap(cfg.Keys), reducer, logger); err != nil {
		logger.Error("ui exited", "err", err)
		return err
	}
	logger.Info("bye", "unsaved", state.Dirty)
	return nil
}

func openTaskStore(cfg config.Config) (taskStore, error) {
	if cfg.TaskBackend == config.BackendSQLite {
		return storage.OpenSQLiteTaskStore(cfg.DBPath)
	}
	return storage.NewJSONTaskStore(cfg.TasksFile), nil
}

func openLog(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
