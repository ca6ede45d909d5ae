package config

import (
	"fmt"
	"time"

	"github.com/learnhub/voicenav/dashboard"
	"github.com/learnhub/voicenav/httpclient"
	"github.com/learnhub/voicenav/langmeta"
)

// Translation cache modes.
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheOff    = "off"
)

// Config is the effective configuration.
type Config struct {
	Language  string
	Role      string
	StartPath string
	DataDir   string
	Proxy     string
	Timeout   time.Duration

	TranslateEndpoint string
	TranslateAPIKey   string
	TranslateCache    string
	CacheSize         int
	MaxConcurrent     int

	ResponderEndpoint string
	ResponderAPIKey   string
	ResponderHistory  int

	SecretEndpoint string
	SecretToken    string

	Dashboards []dashboard.Dashboard
}

// Load reads .voicenav.yaml from dir, applies the environment and
// validates the result.
func Load(dir string) (*Config, error) {
	f, err := LoadFile(dir)
	if err != nil {
		return nil, err
	}
	e, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	return Merge(f, e)
}

// Merge combines a config file (may be nil) with environment overrides,
// fills defaults and validates.
func Merge(f *File, e Env) (*Config, error) {
	if f == nil {
		f = &File{}
	}
	c := &Config{
		Language:          pick(e.Language, f.Language),
		Role:              pick(e.Role, f.Role, dashboard.Student),
		StartPath:         pick(f.StartPath, "/"),
		DataDir:           pick(e.DataDir, f.DataDir),
		Proxy:             pick(e.Proxy, f.Proxy),
		Timeout:           f.Timeout,
		TranslateEndpoint: pick(e.TranslateEndpoint, f.Translate.Endpoint),
		TranslateAPIKey:   e.TranslateAPIKey,
		TranslateCache:    pick(e.TranslateCache, f.Translate.Cache, CacheSQLite),
		CacheSize:         f.Translate.CacheSize,
		MaxConcurrent:     f.Translate.MaxConcurrent,
		ResponderEndpoint: pick(e.ResponderEndpoint, f.Responder.Endpoint),
		ResponderAPIKey:   e.ResponderAPIKey,
		ResponderHistory:  f.Responder.History,
		SecretEndpoint:    pick(e.SecretEndpoint, f.Secrets.Endpoint),
		SecretToken:       e.SecretToken,
		Dashboards:        dashboard.Defaults(),
	}
	if e.Timeout > 0 {
		c.Timeout = e.Timeout
	}
	if c.Timeout <= 0 {
		c.Timeout = httpclient.DefaultTimeout
	}

	if c.Language != "" {
		code, ok := langmeta.Normalize(c.Language)
		if !ok {
			return nil, fmt.Errorf("unsupported language %q", c.Language)
		}
		c.Language = code
	}
	if c.Role != dashboard.Student && c.Role != dashboard.Educator {
		return nil, fmt.Errorf("unknown role %q (valid: %s, %s)", c.Role, dashboard.Student, dashboard.Educator)
	}
	switch c.TranslateCache {
	case CacheMemory, CacheSQLite, CacheOff:
	default:
		return nil, fmt.Errorf("unknown translate cache %q (valid: %s, %s, %s)", c.TranslateCache, CacheMemory, CacheSQLite, CacheOff)
	}

	for _, d := range f.Dashboards {
		replaced := false
		for i := range c.Dashboards {
			if c.Dashboards[i].Name == d.Name {
				c.Dashboards[i].Tabs = d.Tabs
				replaced = true
			}
		}
		if !replaced {
			return nil, fmt.Errorf("unknown dashboard %q", d.Name)
		}
	}
	return c, nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
