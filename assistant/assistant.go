// Package assistant runs a voice navigation session: it tracks the current
// page, feeds recognized utterances to the interpreter and speaks the
// acknowledgements back.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/dashboard"
	"github.com/learnhub/voicenav/speech"
	"github.com/learnhub/voicenav/translate"
	"github.com/learnhub/voicenav/voice"
)

// Config wires a Session.
type Config struct {
	// Role selects the dashboard mounted on dashboard pages.
	Role      string
	StartPath string

	Dashboards *dashboard.Registry
	Selector   *translate.Selector
	// Responder is optional.
	Responder voice.Responder
	// Speech is optional; without it acknowledgements are only returned.
	Speech *speech.Adapter
	Rules  []voice.Rule
	Logger *zap.Logger

	// OnIntent observes every handled utterance.
	OnIntent func(voice.Intent)
	// OnNavigate observes page changes.
	OnNavigate func(path string)
}

// Session is one user's voice navigation session.
type Session struct {
	cfg    Config
	interp *voice.Interpreter
	log    *zap.Logger

	mu   sync.Mutex
	path string
}

// New returns a Session positioned at cfg.StartPath (default "/").
func New(cfg Config) *Session {
	if cfg.Role == "" {
		cfg.Role = dashboard.Student
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, log: log, path: "/"}
	s.interp = voice.NewInterpreter(voice.Config{
		Rules:      cfg.Rules,
		Navigator:  s,
		Dashboards: cfg.Dashboards,
		Selector:   cfg.Selector,
		Responder:  cfg.Responder,
		Logger:     log,
	})
	if cfg.StartPath != "" {
		s.Navigate(cfg.StartPath)
	} else {
		s.Navigate("/")
	}
	return s
}

// Path returns the current page.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Navigate moves to path. Entering a dashboard page mounts the role's
// dashboard; leaving it unmounts.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()

	onDashboard := strings.Contains(path, "dashboard")
	mounted := s.cfg.Dashboards.Mounted()
	switch {
	case onDashboard && mounted != s.cfg.Role:
		s.cfg.Dashboards.Mount(s.cfg.Role)
	case !onDashboard && mounted != "":
		s.cfg.Dashboards.Unmount()
	}

	s.log.Debug("navigated", zap.String("path", path))
	if s.cfg.OnNavigate != nil {
		s.cfg.OnNavigate(path)
	}
}

// Handle interprets one utterance spoken on the current page and speaks the
// acknowledgement.
func (s *Session) Handle(ctx context.Context, transcript string) (voice.Intent, error) {
	intent, err := s.interp.Handle(ctx, voice.Input{
		Transcript:  transcript,
		CurrentPath: s.Path(),
		Language:    s.cfg.Selector.Code(),
		Role:        s.cfg.Role,
	})
	if err != nil {
		return intent, err
	}
	if s.cfg.OnIntent != nil {
		s.cfg.OnIntent(intent)
	}
	if intent.Ack != "" && s.cfg.Speech != nil {
		if err := s.cfg.Speech.Speak(ctx, intent.Ack); err != nil {
			s.log.Warn("speaking acknowledgement failed", zap.Error(err))
		}
	}
	return intent, nil
}

// Run listens and handles utterances until the input ends or ctx is done.
// Sessions that hear nothing are skipped.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.Speech == nil {
		return speech.ErrUnsupported
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := s.cfg.Speech.Listen(ctx)
		switch {
		case err == nil:
		case errors.Is(err, speech.ErrInputClosed):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, speech.ErrNoSpeech):
			continue
		default:
			return err
		}

		if _, err := s.Handle(ctx, ev.Text); err != nil {
			return err
		}
	}
}
