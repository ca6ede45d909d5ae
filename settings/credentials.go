// Package settings provides storage for voicenav user data: API keys for
// the translation and responder services, and the data directory that also
// holds the preferences file and the translation cache.
//
// All files are stored in the XDG data directory:
//
//	$XDG_DATA_HOME/voicenav/  (default: ~/.local/share/voicenav/)
//
// Files stored:
//   - auth.json     — API keys keyed by service ID
//   - prefs.yaml    — persisted UI preferences (see package prefs)
//   - cache.db      — persistent translation cache (see package cache/sqlite)
//
// File permissions for auth.json are 0600 (owner read/write only).
//
// Lookup order for API keys:
//  1. runtime configuration (--api-key flag, VOICENAV_* env, .voicenav.yaml)
//  2. this credential store
//  3. the remote secret-fetch endpoint (see package secret)
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	dataDirName = "voicenav"
	fileName    = "auth.json"
)

// Service IDs.
const (
	ServiceTranslate = "translate"
	ServiceResponder = "responder"
)

// Info is the entry stored per service in auth.json.
type Info struct {
	// Key is the API key.
	Key string `json:"key"`

	// BaseURL optionally overrides the service endpoint.
	BaseURL string `json:"baseUrl,omitempty"`
}

// Store holds all service credentials, keyed by service ID.
type Store map[string]*Info

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// dataDir returns the XDG data directory for voicenav.
// Respects $XDG_DATA_HOME (falls back to ~/.local/share).
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

// filePath returns the path to the auth file.
func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the auth.json file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// DataDir returns the voicenav data directory path.
// Default: ~/.local/share/voicenav (or $XDG_DATA_HOME/voicenav).
func DataDir() (string, error) {
	return dataDir()
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads the credential store from disk.
// Returns an empty store if the file doesn't exist or is invalid.
func Load() Store {
	path, err := filePath()
	if err != nil {
		return make(Store)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return make(Store)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return make(Store)
	}

	if store == nil {
		return make(Store)
	}

	return store
}

// Save writes the credential store to disk with 0600 permissions.
func Save(store Store) error {
	path, err := filePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing auth file: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Get / Set / Remove
// ---------------------------------------------------------------------------

// Get returns the entry for a service, or nil if not found.
func Get(serviceID string) *Info {
	return Load()[serviceID]
}

// SetAPIKey stores an API key for a service (upsert).
func SetAPIKey(serviceID, key string) error {
	return SetAPIKeyWithBaseURL(serviceID, key, "")
}

// SetAPIKeyWithBaseURL stores an API key together with an endpoint override.
func SetAPIKeyWithBaseURL(serviceID, key, baseURL string) error {
	store := Load()
	store[serviceID] = &Info{Key: key, BaseURL: baseURL}
	return Save(store)
}

// GetAPIKey retrieves the stored API key for a service.
// Returns empty string if not found.
func GetAPIKey(serviceID string) string {
	info := Get(serviceID)
	if info == nil {
		return ""
	}
	return info.Key
}

// GetBaseURL retrieves the stored endpoint override for a service.
func GetBaseURL(serviceID string) string {
	info := Get(serviceID)
	if info == nil {
		return ""
	}
	return info.BaseURL
}

// Remove deletes credentials for a service.
func Remove(serviceID string) error {
	store := Load()
	if _, ok := store[serviceID]; !ok {
		return nil // Nothing to delete
	}
	delete(store, serviceID)
	return Save(store)
}

// RemoveAll removes all stored credentials.
func RemoveAll() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing auth file: %w", err)
	}
	return nil
}

// Services returns the IDs of all stored services, sorted.
func Services() []string {
	store := Load()
	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveAPIKey returns runtime if set, otherwise the stored key.
func ResolveAPIKey(serviceID, runtime string) string {
	if key := strings.TrimSpace(runtime); key != "" {
		return key
	}
	return GetAPIKey(serviceID)
}

// ---------------------------------------------------------------------------
// Display helpers
// ---------------------------------------------------------------------------

// MaskKey returns a masked version of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
