// Package cache memoizes translations keyed by (source text, target
// language).
package cache

import (
	"container/list"
	"context"
	"sync"
)

// DefaultMaxEntries bounds a Memory cache created with a non-positive size.
const DefaultMaxEntries = 4096

// Cache stores translated strings.
type Cache interface {
	Get(ctx context.Context, text, lang string) (string, bool, error)
	Put(ctx context.Context, text, lang, translated string) error
}

type key struct {
	text string
	lang string
}

type entry struct {
	key        key
	translated string
}

// Memory is an in-process LRU cache.
type Memory struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[key]*list.Element
}

// NewMemory returns an LRU cache holding at most maxEntries translations.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[key]*list.Element),
	}
}

// Get returns the cached translation of text into lang.
func (m *Memory) Get(_ context.Context, text, lang string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key{text, lang}]
	if !ok {
		return "", false, nil
	}
	m.order.MoveToFront(el)
	return el.Value.(*entry).translated, true, nil
}

// Put stores a translation, evicting the least recently used entry when
// the cache is full.
func (m *Memory) Put(_ context.Context, text, lang, translated string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{text, lang}
	if el, ok := m.entries[k]; ok {
		el.Value.(*entry).translated = translated
		m.order.MoveToFront(el)
		return nil
	}

	m.entries[k] = m.order.PushFront(&entry{key: k, translated: translated})
	for m.order.Len() > m.max {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*entry).key)
	}
	return nil
}

// Len returns the number of cached translations.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Tiered reads through a fast cache into a slower persistent one and
// back-fills the fast cache on a persistent hit.
type Tiered struct {
	Front Cache
	Back  Cache
}

// Get checks Front, then Back.
func (t Tiered) Get(ctx context.Context, text, lang string) (string, bool, error) {
	if v, ok, err := t.Front.Get(ctx, text, lang); err == nil && ok {
		return v, true, nil
	}
	v, ok, err := t.Back.Get(ctx, text, lang)
	if err != nil || !ok {
		return "", false, err
	}
	_ = t.Front.Put(ctx, text, lang, v)
	return v, true, nil
}

// Put writes to both tiers.
func (t Tiered) Put(ctx context.Context, text, lang, translated string) error {
	if err := t.Front.Put(ctx, text, lang, translated); err != nil {
		return err
	}
	return t.Back.Put(ctx, text, lang, translated)
}
