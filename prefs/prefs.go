// Package prefs implements the small key/value stores that hold UI
// preferences: a YAML file that survives restarts (the persisted language)
// and an in-memory store scoped to one session (the pending dashboard tab).
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the default preferences file name inside the data directory.
const FileName = "prefs.yaml"

// Version is the preferences file format version.
const Version = 1

// Well-known keys.
const (
	KeyLanguage   = "preferredLanguage"
	KeyPendingTab = "pendingDashboardTab"
)

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// ---------------------------------------------------------------------------
// File-backed store
// ---------------------------------------------------------------------------

// File is a Store persisted as YAML. Every mutation is written through.
type File struct {
	Version int               `yaml:"version"`
	Values  map[string]string `yaml:"values"`

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// Load reads the preferences file from dir.
// Returns an empty store if the file doesn't exist.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	f := &File{
		Version: Version,
		Values:  make(map[string]string),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.path = path

	if f.Values == nil {
		f.Values = make(map[string]string)
	}

	return f, nil
}

// Path returns the preferences file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the value stored under key.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.Values[key]
	return v, ok
}

// Set stores value under key and saves the file.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values[key] = value
	return f.saveLocked()
}

// Remove deletes key and saves the file. Missing keys are a no-op.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Values[key]; !ok {
		return nil
	}
	delete(f.Values, key)
	return f.saveLocked()
}

func (f *File) saveLocked() error {
	if f.path == "" {
		return fmt.Errorf("preferences file path not set")
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Session store
// ---------------------------------------------------------------------------

// Memory is a Store that lives as long as the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty session store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
