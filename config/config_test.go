package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/learnhub/voicenav/dashboard"
	"github.com/learnhub/voicenav/httpclient"
)

func writeFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(t.TempDir())
	if err != nil || f != nil {
		t.Fatalf("LoadFile(empty dir) = (%v, %v), want (nil, nil)", f, err)
	}
}

func TestLoadFileParsesAndValidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, `
language: hi_IN
role: educator
timeout: 12s
translate:
  cache: memory
  cache_size: 128
responder:
  endpoint: https://chat.example.test/voice
  history: 4
dashboards:
  - name: educator
    tabs: [overview, grading]
`)

	f, err := LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Timeout != 12*time.Second || f.Translate.CacheSize != 128 || f.Responder.History != 4 {
		t.Fatalf("unexpected file: %#v", f)
	}

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "nameless dashboard", content: "dashboards:\n  - tabs: [a]\n", wantErr: "has no name"},
		{name: "empty tabs", content: "dashboards:\n  - name: student\n    tabs: []\n", wantErr: "has no tabs"},
		{name: "bad yaml", content: "role: [unclosed\n", wantErr: "parsing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tc.content)
			_, err := LoadFile(dir)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("LoadFile error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestMergeDefaults(t *testing.T) {
	c, err := Merge(nil, Env{})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if c.Role != dashboard.Student || c.StartPath != "/" || c.TranslateCache != CacheSQLite {
		t.Fatalf("unexpected defaults: %#v", c)
	}
	if c.Timeout != httpclient.DefaultTimeout {
		t.Fatalf("Timeout = %v, want %v", c.Timeout, httpclient.DefaultTimeout)
	}
	if c.Language != "" {
		t.Fatalf("Language = %q, want empty so the persisted choice wins", c.Language)
	}
	if len(c.Dashboards) != 2 {
		t.Fatalf("got %d dashboards, want 2", len(c.Dashboards))
	}
}

func TestMergeEnvWinsOverFile(t *testing.T) {
	f := &File{
		Language:  "ta",
		Role:      "student",
		Timeout:   5 * time.Second,
		Translate: TranslateSection{Endpoint: "https://file.example.test", Cache: CacheMemory},
		Responder: ResponderSection{Endpoint: "https://file-chat.example.test"},
		Dashboards: []DashboardSection{
			{Name: dashboard.Student, Tabs: []string{"overview", "grades"}},
		},
	}
	e := Env{
		Language:          "hi-IN",
		Role:              "educator",
		Timeout:           9 * time.Second,
		TranslateEndpoint: "https://env.example.test",
		TranslateAPIKey:   "env-key",
	}

	c, err := Merge(f, e)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if c.Language != "hi" || c.Role != dashboard.Educator || c.Timeout != 9*time.Second {
		t.Fatalf("env overrides not applied: %#v", c)
	}
	if c.TranslateEndpoint != "https://env.example.test" || c.TranslateAPIKey != "env-key" {
		t.Fatalf("translate overrides not applied: %#v", c)
	}
	if c.TranslateCache != CacheMemory || c.ResponderEndpoint != "https://file-chat.example.test" {
		t.Fatalf("file values lost: %#v", c)
	}
	for _, d := range c.Dashboards {
		if d.Name == dashboard.Student && strings.Join(d.Tabs, ",") != "overview,grades" {
			t.Fatalf("student tabs = %v, want override", d.Tabs)
		}
	}
}

func TestMergeValidation(t *testing.T) {
	cases := []struct {
		name    string
		file    *File
		env     Env
		wantErr string
	}{
		{name: "language", env: Env{Language: "klingon"}, wantErr: "unsupported language"},
		{name: "role", file: &File{Role: "admin"}, wantErr: "unknown role"},
		{name: "cache", env: Env{TranslateCache: "redis"}, wantErr: "unknown translate cache"},
		{name: "dashboard", file: &File{Dashboards: []DashboardSection{{Name: "parent", Tabs: []string{"x"}}}}, wantErr: "unknown dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Merge(tc.file, tc.env)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Merge error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "role: educator\nresponder:\n  endpoint: https://chat.example.test\n")
	t.Setenv("VOICENAV_TIMEOUT", "3s")
	t.Setenv("VOICENAV_RESPONDER_API_KEY", "chat-key")
	t.Setenv("VOICENAV_LANGUAGE", "es")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Timeout != 3*time.Second || c.ResponderAPIKey != "chat-key" || c.Language != "es" {
		t.Fatalf("environment not applied: %#v", c)
	}
	if c.Role != dashboard.Educator || c.ResponderEndpoint != "https://chat.example.test" {
		t.Fatalf("file not applied: %#v", c)
	}

	t.Setenv("VOICENAV_TIMEOUT", "soon")
	if _, err := Load(dir); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("Load with bad duration error = %v", err)
	}
}
