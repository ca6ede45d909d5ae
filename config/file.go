// Package config loads voicenav settings from .voicenav.yaml and VOICENAV_*
// environment variables. Environment values win over the file; CLI flags
// are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// FileName is the config file looked up in the working directory.
const FileName = ".voicenav.yaml"

// File is the top-level .voicenav.yaml structure.
type File struct {
	// Language is the initial UI language when none is persisted.
	Language string `yaml:"language,omitempty"`
	// Role is "student" or "educator" (default "student").
	Role string `yaml:"role,omitempty"`
	// StartPath is the page a session starts on (default "/").
	StartPath string `yaml:"start_path,omitempty"`
	// DataDir overrides the XDG data directory.
	DataDir string `yaml:"data_dir,omitempty"`
	// Proxy is an HTTP/HTTPS proxy for every outgoing request.
	Proxy string `yaml:"proxy,omitempty"`
	// Timeout is the per-request timeout, e.g. "20s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	Translate  TranslateSection   `yaml:"translate,omitempty"`
	Responder  ResponderSection   `yaml:"responder,omitempty"`
	Secrets    SecretsSection     `yaml:"secrets,omitempty"`
	Dashboards []DashboardSection `yaml:"dashboards,omitempty"`
}

// TranslateSection configures the translation client.
type TranslateSection struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	// Cache is "memory", "sqlite" or "off" (default "sqlite").
	Cache string `yaml:"cache,omitempty"`
	// CacheSize bounds the in-memory cache.
	CacheSize int `yaml:"cache_size,omitempty"`
	// MaxConcurrent bounds parallel languages in multi-language runs.
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
}

// ResponderSection configures the conversational assistant endpoint.
type ResponderSection struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	History  int    `yaml:"history,omitempty"`
}

// SecretsSection configures the secret-fetch endpoint.
type SecretsSection struct {
	Endpoint string `yaml:"endpoint,omitempty"`
}

// DashboardSection overrides the tab allow-list of one dashboard.
type DashboardSection struct {
	Name string   `yaml:"name"`
	Tabs []string `yaml:"tabs"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadFile reads .voicenav.yaml from dir. It returns nil, nil when the file
// does not exist.
func LoadFile(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, d := range f.Dashboards {
		if d.Name == "" {
			return nil, fmt.Errorf("%s: dashboard #%d has no name", path, i+1)
		}
		if len(d.Tabs) == 0 {
			return nil, fmt.Errorf("%s: dashboard %q has no tabs", path, d.Name)
		}
	}
	return &f, nil
}
