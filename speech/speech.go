// Package speech adapts speech recognition and synthesis engines to the
// voice assistant: one transcript per recognition session, spoken replies
// in the locale of the active UI language.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/i18n"
	"github.com/learnhub/voicenav/langmeta"
)

var (
	// ErrUnsupported is returned when no recognizer or synthesizer exists.
	ErrUnsupported = errors.New("speech capability not supported")
	// ErrBusy is returned by Listen while a session is running.
	ErrBusy = errors.New("already listening")
	// ErrNoSpeech is returned when a session ends without words.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrInputClosed is returned when the audio source has ended for good.
	ErrInputClosed = errors.New("speech input closed")
)

// RecognizeOptions configures one recognition session.
type RecognizeOptions struct {
	Locale         string
	Continuous     bool
	InterimResults bool
}

// Recognizer turns one utterance into text.
type Recognizer interface {
	Recognize(ctx context.Context, opts RecognizeOptions) (string, error)
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	Speak(ctx context.Context, text, locale string) error
	Cancel()
}

// TranscriptEvent is one recognized utterance.
type TranscriptEvent struct {
	Text      string
	Timestamp time.Time
}

// State is the listening state of an Adapter.
type State int

const (
	StateIdle State = iota
	StateListening
)

func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "idle"
}

// Options holds Adapter callbacks. All are optional.
type Options struct {
	// OnTranscript receives the transcript of a successful session.
	OnTranscript func(TranscriptEvent)
	// OnEnd runs when a session finishes, successful or not.
	OnEnd func()
	// OnError receives failures with a user-visible message in the
	// active language.
	OnError func(err error, message string)
	// Logger for diagnostics.
	Logger *zap.Logger
	// Now overrides the transcript clock.
	Now func() time.Time
}

// Adapter wraps a Recognizer and a Synthesizer.
type Adapter struct {
	rec      Recognizer
	syn      Synthesizer
	language func() string
	opts     Options
	log      *zap.Logger

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	aborted bool
}

// NewAdapter returns an Adapter. rec or syn may be nil when the platform
// lacks the capability. language returns the active language code.
func NewAdapter(rec Recognizer, syn Synthesizer, language func() string, opts Options) *Adapter {
	if language == nil {
		language = func() string { return langmeta.Default }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{rec: rec, syn: syn, language: language, opts: opts, log: log}
}

// Supported reports which capabilities are available.
func (a *Adapter) Supported() (recognition, synthesis bool) {
	return a.rec != nil, a.syn != nil
}

// Locale returns the speech locale of the active language.
func (a *Adapter) Locale() string {
	return langmeta.SpeechLocale(a.language())
}

// State returns the listening state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Listen runs one recognition session and returns its transcript. The
// transcript is also delivered to OnTranscript, followed by OnEnd.
func (a *Adapter) Listen(ctx context.Context) (TranscriptEvent, error) {
	if a.rec == nil {
		err := fmt.Errorf("recognition: %w", ErrUnsupported)
		a.fail(err, i18n.MsgRecognitionMissing)
		return TranscriptEvent{}, err
	}

	a.mu.Lock()
	if a.state == StateListening {
		a.mu.Unlock()
		return TranscriptEvent{}, ErrBusy
	}
	sctx, cancel := context.WithCancel(ctx)
	a.state = StateListening
	a.cancel = cancel
	a.aborted = false
	a.mu.Unlock()

	defer func() {
		cancel()
		a.mu.Lock()
		a.state = StateIdle
		a.cancel = nil
		a.mu.Unlock()
		if a.opts.OnEnd != nil {
			a.opts.OnEnd()
		}
	}()

	locale := a.Locale()
	a.log.Debug("listening", zap.String("locale", locale))
	text, err := a.rec.Recognize(sctx, RecognizeOptions{Locale: locale})
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = ErrNoSpeech
	}
	if err != nil {
		a.mu.Lock()
		aborted := a.aborted
		a.mu.Unlock()
		switch {
		case aborted, errors.Is(err, context.Canceled), errors.Is(err, ErrInputClosed):
		case errors.Is(err, ErrNoSpeech):
			a.fail(err, i18n.MsgNoSpeech)
		default:
			a.fail(err, i18n.MsgRecognitionFailed)
		}
		return TranscriptEvent{}, err
	}

	ev := TranscriptEvent{Text: text, Timestamp: a.opts.Now()}
	if a.opts.OnTranscript != nil {
		a.opts.OnTranscript(ev)
	}
	return ev, nil
}

// Stop ends the running session, if any.
func (a *Adapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// Abort ends the running session without reporting anything and silences
// any utterance in progress.
func (a *Adapter) Abort() {
	a.mu.Lock()
	if a.cancel != nil {
		a.aborted = true
		a.cancel()
	}
	a.mu.Unlock()
	a.CancelSpeech()
}

// Speak interrupts any current utterance and speaks text in the active
// locale. Blank text is ignored.
func (a *Adapter) Speak(ctx context.Context, text string) error {
	if a.syn == nil {
		err := fmt.Errorf("synthesis: %w", ErrUnsupported)
		a.fail(err, i18n.MsgSynthesisMissing)
		return err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	a.syn.Cancel()
	if err := a.syn.Speak(ctx, text, a.Locale()); err != nil {
		return fmt.Errorf("speaking: %w", err)
	}
	return nil
}

// CancelSpeech silences the current utterance.
func (a *Adapter) CancelSpeech() {
	if a.syn != nil {
		a.syn.Cancel()
	}
}

func (a *Adapter) fail(err error, msgid string) {
	a.log.Debug("speech error", zap.Error(err))
	if a.opts.OnError != nil {
		a.opts.OnError(err, i18n.Get(a.language(), msgid))
	}
}
