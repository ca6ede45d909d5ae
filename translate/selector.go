package translate

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/langmeta"
	"github.com/learnhub/voicenav/prefs"
)

// ErrUnsupportedLanguage is returned when selecting a language that is not
// in the registry.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Selector holds the active UI language. The selection is always a registry
// member and is persisted to a prefs store on every change.
type Selector struct {
	mu        sync.Mutex
	code      string
	store     prefs.Store
	log       *zap.Logger
	nextID    int
	observers map[int]func(langmeta.Language)
}

// NewSelector restores the persisted language from store (nil for none).
// Unknown persisted values are ignored and the selection starts at English.
func NewSelector(store prefs.Store, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Selector{
		code:      langmeta.Default,
		store:     store,
		log:       logger,
		observers: make(map[int]func(langmeta.Language)),
	}
	if store != nil {
		if saved, ok := store.Get(prefs.KeyLanguage); ok {
			if langmeta.IsSupported(saved) {
				s.code = saved
			} else {
				logger.Warn("ignoring unsupported persisted language", zap.String("code", saved))
			}
		}
	}
	return s
}

// Code returns the active language code.
func (s *Selector) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Current returns the active language.
func (s *Selector) Current() langmeta.Language {
	l, _ := langmeta.Lookup(s.Code())
	return l
}

// Set selects a language. Locale variants ("hi-IN") resolve to their base
// code. Observers are notified only when the selection changes.
func (s *Selector) Set(code string) error {
	resolved, ok := langmeta.Normalize(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}

	s.mu.Lock()
	changed := s.code != resolved
	s.code = resolved
	observers := make([]func(langmeta.Language), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Set(prefs.KeyLanguage, resolved); err != nil {
			s.log.Warn("persisting language selection failed", zap.String("code", resolved), zap.Error(err))
		}
	}

	if changed {
		lang, _ := langmeta.Lookup(resolved)
		s.log.Info("language changed", zap.String("code", resolved))
		for _, fn := range observers {
			fn(lang)
		}
	}
	return nil
}

// Subscribe registers fn to run after every language change.
func (s *Selector) Subscribe(fn func(langmeta.Language)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
