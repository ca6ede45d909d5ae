// Package dashboard tracks the active tab of the role dashboards and the
// tab requested by a voice command before the dashboard was on screen.
//
// The Registry is shared by injection: the voice interpreter switches tabs
// through it and views subscribe to its events.
package dashboard

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/prefs"
)

// Dashboard names.
const (
	Student  = "student"
	Educator = "educator"
)

// Dashboard describes one dashboard view and its allowed tabs.
type Dashboard struct {
	Name string
	Tabs []string
}

// Default returns the tab shown when the dashboard mounts.
func (d Dashboard) Default() string {
	if len(d.Tabs) == 0 {
		return ""
	}
	return d.Tabs[0]
}

// Has reports whether tab is allowed, case-sensitively.
func (d Dashboard) Has(tab string) bool {
	for _, t := range d.Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

// Lookup returns the allowed tab matching name case-insensitively.
func (d Dashboard) Lookup(name string) (string, bool) {
	for _, t := range d.Tabs {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}

// Defaults returns the student and educator dashboards.
func Defaults() []Dashboard {
	return []Dashboard{
		{Name: Student, Tabs: []string{"overview", "courses", "progress", "assignments", "certificates", "jobs"}},
		{Name: Educator, Tabs: []string{"overview", "courses", "students", "materials", "analytics", "jobs"}},
	}
}

// EventKind distinguishes registry events.
type EventKind int

const (
	EventMounted EventKind = iota
	EventUnmounted
	EventTabChanged
)

// Event is delivered to subscribers.
type Event struct {
	Kind      EventKind
	Dashboard string
	Tab       string
}

// Registry holds the mounted dashboard and its active tab.
type Registry struct {
	mu         sync.Mutex
	dashboards map[string]Dashboard
	mounted    string
	active     string
	session    prefs.Store
	log        *zap.Logger
	nextID     int
	observers  map[int]func(Event)
}

// NewRegistry returns a Registry for dashboards. The pending tab is kept in
// session (nil for a private in-memory store).
func NewRegistry(dashboards []Dashboard, session prefs.Store, logger *zap.Logger) *Registry {
	if session == nil {
		session = prefs.NewMemory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		dashboards: make(map[string]Dashboard, len(dashboards)),
		session:    session,
		log:        logger,
		observers:  make(map[int]func(Event)),
	}
	for _, d := range dashboards {
		r.dashboards[d.Name] = d
	}
	return r
}

// Dashboard returns the dashboard registered under name.
func (r *Registry) Dashboard(name string) (Dashboard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dashboards[name]
	return d, ok
}

// Mounted returns the mounted dashboard name, or "" when none is mounted.
func (r *Registry) Mounted() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounted
}

// ActiveTab returns the active tab of the mounted dashboard.
func (r *Registry) ActiveTab() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Activate switches the mounted dashboard to tab. The name must match an
// allowed tab exactly; otherwise, or when nothing is mounted, Activate
// returns false and changes nothing.
func (r *Registry) Activate(tab string) bool {
	r.mu.Lock()
	d, ok := r.dashboards[r.mounted]
	if r.mounted == "" || !ok || !d.Has(tab) {
		r.mu.Unlock()
		return false
	}
	r.active = tab
	observers := r.snapshotLocked()
	r.mu.Unlock()

	r.log.Debug("dashboard tab activated", zap.String("dashboard", d.Name), zap.String("tab", tab))
	notify(observers, Event{Kind: EventTabChanged, Dashboard: d.Name, Tab: tab})
	return true
}

// Lookup resolves name case-insensitively against the allow-list of
// dashboard (or of the mounted dashboard when dashboard is "").
func (r *Registry) Lookup(dashboard, name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dashboard == "" {
		dashboard = r.mounted
	}
	d, ok := r.dashboards[dashboard]
	if !ok {
		return "", false
	}
	return d.Lookup(name)
}

// SetPending stores tab for application on the next Mount. A later call
// overwrites an earlier one.
func (r *Registry) SetPending(tab string) {
	if err := r.session.Set(prefs.KeyPendingTab, tab); err != nil {
		r.log.Warn("storing pending tab failed", zap.String("tab", tab), zap.Error(err))
	}
}

// Pending returns the stored pending tab.
func (r *Registry) Pending() (string, bool) {
	return r.session.Get(prefs.KeyPendingTab)
}

// Mount shows dashboard with its default tab, then drains the pending tab:
// it is read once, applied if allowed, and cleared either way.
func (r *Registry) Mount(name string) bool {
	r.mu.Lock()
	d, ok := r.dashboards[name]
	if !ok {
		r.mu.Unlock()
		r.log.Warn("unknown dashboard", zap.String("dashboard", name))
		return false
	}
	r.mounted = name
	r.active = d.Default()
	observers := r.snapshotLocked()
	r.mu.Unlock()

	notify(observers, Event{Kind: EventMounted, Dashboard: name, Tab: d.Default()})

	if pending, ok := r.Pending(); ok {
		_ = r.session.Remove(prefs.KeyPendingTab)
		if !r.Activate(pending) {
			r.log.Info("discarding pending tab", zap.String("dashboard", name), zap.String("tab", pending))
		}
	}
	return true
}

// Unmount hides the mounted dashboard.
func (r *Registry) Unmount() {
	r.mu.Lock()
	name := r.mounted
	r.mounted = ""
	r.active = ""
	observers := r.snapshotLocked()
	r.mu.Unlock()

	if name != "" {
		notify(observers, Event{Kind: EventUnmounted, Dashboard: name})
	}
}

// Subscribe registers fn for registry events.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.observers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.observers, id)
	}
}

func (r *Registry) snapshotLocked() []func(Event) {
	out := make([]func(Event), 0, len(r.observers))
	for _, fn := range r.observers {
		out = append(out, fn)
	}
	return out
}

func notify(observers []func(Event), ev Event) {
	for _, fn := range observers {
		fn(ev)
	}
}
