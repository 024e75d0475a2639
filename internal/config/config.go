// Package config handles workspace and global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/encoding/json"
)

// Config is the workspace configuration stored in .bibscope/config.json.
type Config struct {
	Name             string   `json:"name,omitempty"`
	RemoveDuplicates *bool    `json:"remove_duplicates,omitempty"` // Overrides the global default
	Imports          []Import `json:"imports,omitempty"`
}

// Import records one export loaded or merged into the workspace.
type Import struct {
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	RunID     string    `json:"run_id"`
	Documents int       `json:"documents"` // Rows added to the workspace
	At        time.Time `json:"at"`
}

const (
	WorkspaceDir = ".bibscope"
	ConfigFile   = "config.json"
	RecordsFile  = "records.jsonl"
	CacheDir     = "cache"
	DBFile       = "records.db"

	// RootEnv names the environment variable overriding workspace discovery.
	RootEnv = "BIBSCOPE_ROOT"
)

var (
	// ErrWorkspaceNotFound is returned when no .bibscope directory exists
	// at or above the starting directory.
	ErrWorkspaceNotFound = errors.New("not in a bibscope workspace (no .bibscope directory found)")

	// ErrWorkspaceExists is returned by Init for an initialized directory.
	ErrWorkspaceExists = errors.New("bibscope workspace already exists")
)

// WorkspacePath returns the path to the .bibscope directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// RecordsPath returns the path to records.jsonl from a root path.
func RecordsPath(root string) string {
	return filepath.Join(root, WorkspaceDir, RecordsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir)
}

// DBPath returns the path to records.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir, DBFile)
}

// IsWorkspace checks if the given path contains a bibscope workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from start to the nearest workspace root.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrWorkspaceNotFound
		}
		abs = parent
	}
}

// Root returns the workspace root named by BIBSCOPE_ROOT, or the one found
// by walking up from the working directory.
func Root() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		root = ExpandPath(root)
		if !IsWorkspace(root) {
			return "", fmt.Errorf("%w: %s=%s", ErrWorkspaceNotFound, RootEnv, root)
		}
		return filepath.Abs(root)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return FindWorkspace(cwd)
}

// Init creates a workspace at root with an empty records file.
func Init(root string, cfg *Config) error {
	if IsWorkspace(root) {
		return fmt.Errorf("%w: %s", ErrWorkspaceExists, WorkspacePath(root))
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	if err := os.WriteFile(RecordsPath(root), nil, 0644); err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg.Save(root)
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
