package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "quill"
	DefaultConfigFileName = "config.toml"
	DefaultNotesDir       = "notes"
	DefaultTasksFile      = "tasks.json"
	DefaultDBName         = "tasks.db"
	DefaultLogFile        = "quill.log"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Keymap holds the global Normal-mode bindings.
type Keymap struct {
	Quit     string `toml:"quit"`
	Command  string `toml:"command"`
	Search   string `toml:"search"`
	Help     string `toml:"help"`
	Notes    string `toml:"notes"`
	Calendar string `toml:"calendar"`
	Tasks    string `toml:"tasks"`
}

type Config struct {
	NotesDir    string `toml:"notes_dir"`
	TasksFile   string `toml:"tasks_file"`
	TaskBackend string `toml:"task_backend"`
	DBPath      string `toml:"db_path"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	Keys        Keymap `toml:"keys"`
}

// ResolveRoot returns ~/.config/quill. Failing to find the home directory
// is fatal for the caller.
func ResolveRoot() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

func ResolveConfigPath(root string) string {
	return filepath.Join(root, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults first when
// the file does not exist. Relative paths are resolved against root.
func LoadOrCreate(path, root string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(root)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(root)
}

// SlogLevel maps the configured level name onto slog.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults() {
	d := defaultConfig()
	if c.NotesDir == "" {
		c.NotesDir = d.NotesDir
	}
	if c.TasksFile == "" {
		c.TasksFile = d.TasksFile
	}
	if c.TaskBackend == "" {
		c.TaskBackend = d.TaskBackend
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.LogFile == "" {
		c.LogFile = d.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	k := &c.Keys
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&k.Quit, d.Keys.Quit},
		{&k.Command, d.Keys.Command},
		{&k.Search, d.Keys.Search},
		{&k.Help, d.Keys.Help},
		{&k.Notes, d.Keys.Notes},
		{&k.Calendar, d.Keys.Calendar},
		{&k.Tasks, d.Keys.Tasks},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}

func (c Config) validate() error {
	switch c.TaskBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown task_backend %q", c.TaskBackend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func (c Config) resolve(root string) (Config, error) {
	var err error
	for _, p := range []*string{&c.NotesDir, &c.TasksFile, &c.DBPath, &c.LogFile} {
		if *p, err = resolvePath(*p, root); err != nil {
			return c, err
		}
	}
	return c, nil
}

func resolvePath(p, root string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(root, expanded), nil
}

func defaultConfig() Config {
	return Config{
		NotesDir:    DefaultNotesDir,
		TasksFile:   DefaultTasksFile,
		TaskBackend: BackendJSON,
		DBPath:      DefaultDBName,
		LogFile:     DefaultLogFile,
		LogLevel:    "info",
		Keys:        DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		Quit:     "q",
		Command:  ":",
		Search:   "/",
		Help:     "?",
		Notes:    "n",
		Calendar: "c",
		Tasks:    "T",
	}
}
