package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the selected theme key to a small JSON file, the terminal
// stand-in for the web client's localStorage entry.
type Store struct {
	mu   sync.Mutex
	path string
}

type stored struct {
	Theme string `json:"theme"`
}

// NewStore writes to path. An empty path falls back to
// <user config dir>/fourinarow/theme.json, or a dotfile in the working
// directory when no config dir is available.
func NewStore(path string) *Store {
	if path == "" {
		path = defaultPath()
	}
	return &Store{path: path}
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".fourinarow-theme.json"
	}
	return filepath.Join(dir, "fourinarow", "theme.json")
}

// Load returns the persisted theme key. A missing file is not an error; it
// yields the default key.
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return DefaultName, nil
	}
	if err != nil {
		return DefaultName, fmt.Errorf("read theme file: %w", err)
	}

	var st stored
	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultName, fmt.Errorf("parse theme file: %w", err)
	}
	if _, ok := Lookup(st.Theme); !ok {
		return DefaultName, nil
	}
	return st.Theme, nil
}

// Save persists the theme key, creating the parent directory if needed.
func (s *Store) Save(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}
	data, err := json.MarshalIndent(stored{Theme: key}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	return nil
}
