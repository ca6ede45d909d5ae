package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	dir := t.TempDir()

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Path() != filepath.Join(dir, FileName) {
		t.Fatalf("Path() = %q, want %q", f.Path(), filepath.Join(dir, FileName))
	}
	if _, ok := f.Get(KeyLanguage); ok {
		t.Fatalf("Get() on empty store should report missing key")
	}
}

func TestFileSetPersistsAcrossLoads(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := f.Set(KeyLanguage, "hi"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := f.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() after Set error: %v", err)
	}
	if got, ok := reloaded.Get(KeyLanguage); !ok || got != "hi" {
		t.Fatalf("Get(%q) = (%q, %v), want (hi, true)", KeyLanguage, got, ok)
	}
	if got, ok := reloaded.Get("theme"); !ok || got != "dark" {
		t.Fatalf("Get(theme) = (%q, %v), want (dark, true)", got, ok)
	}

	if err := reloaded.Remove("theme"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := reloaded.Remove("missing"); err != nil {
		t.Fatalf("Remove(missing) should be a no-op, got: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "theme") {
		t.Fatalf("removed key still on disk:\n%s", data)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("values: [unclosed"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatalf("Load() should fail on invalid YAML")
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Get(KeyPendingTab); ok {
		t.Fatalf("new Memory store should be empty")
	}

	_ = m.Set(KeyPendingTab, "analytics")
	if got, ok := m.Get(KeyPendingTab); !ok || got != "analytics" {
		t.Fatalf("Get() = (%q, %v), want (analytics, true)", got, ok)
	}

	_ = m.Remove(KeyPendingTab)
	if _, ok := m.Get(KeyPendingTab); ok {
		t.Fatalf("key should be gone after Remove()")
	}
}
