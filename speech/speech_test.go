package speech

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/learnhub/voicenav/i18n"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRecognizer struct {
	text    string
	err     error
	block   bool
	started chan struct{}
	locales []string
}

func (f *fakeRecognizer) Recognize(ctx context.Context, opts RecognizeOptions) (string, error) {
	f.locales = append(f.locales, opts.Locale)
	if f.block {
		close(f.started)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

type fakeSynth struct {
	mu      sync.Mutex
	spoken  []string
	cancels int
}

func (f *fakeSynth) Speak(_ context.Context, text, locale string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, locale+"|"+text)
	return nil
}

func (f *fakeSynth) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
}

func fixedLang(code string) func() string {
	return func() string { return code }
}

func TestListenDeliversTranscriptThenEnd(t *testing.T) {
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var order []string
	rec := &fakeRecognizer{text: "  open courses  "}
	a := NewAdapter(rec, nil, fixedLang("hi"), Options{
		OnTranscript: func(ev TranscriptEvent) { order = append(order, "transcript:"+ev.Text) },
		OnEnd:        func() { order = append(order, "end") },
		Now:          func() time.Time { return stamp },
	})

	ev, err := a.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "open courses", ev.Text)
	assert.Equal(t, stamp, ev.Timestamp)
	assert.Equal(t, []string{"transcript:open courses", "end"}, order)
	assert.Equal(t, []string{"hi-IN"}, rec.locales)
	assert.Equal(t, StateIdle, a.State())
}

func TestListenWithoutRecognizer(t *testing.T) {
	var gotMsg string
	a := NewAdapter(nil, nil, fixedLang("en"), Options{
		OnError: func(_ error, msg string) { gotMsg = msg },
	})

	_, err := a.Listen(context.Background())
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, i18n.MsgRecognitionMissing, gotMsg)

	rec, syn := a.Supported()
	assert.False(t, rec)
	assert.False(t, syn)
}

func TestListenErrorsReturnToIdle(t *testing.T) {
	cases := []struct {
		name    string
		recErr  error
		text    string
		wantErr error
		wantMsg bool
	}{
		{name: "no speech", text: "   ", wantErr: ErrNoSpeech, wantMsg: true},
		{name: "engine failure", recErr: errors.New("mic unplugged"), wantMsg: true},
		{name: "input closed", recErr: ErrInputClosed, wantErr: ErrInputClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var msgs []string
			ended := false
			a := NewAdapter(&fakeRecognizer{text: tc.text, err: tc.recErr}, nil, nil, Options{
				OnError: func(_ error, msg string) { msgs = append(msgs, msg) },
				OnEnd:   func() { ended = true },
			})

			_, err := a.Listen(context.Background())
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			assert.Equal(t, tc.wantMsg, len(msgs) == 1)
			assert.True(t, ended)
			assert.Equal(t, StateIdle, a.State())
		})
	}
}

func TestListenBusyAndStop(t *testing.T) {
	rec := &fakeRecognizer{block: true, started: make(chan struct{})}
	var msgs []string
	a := NewAdapter(rec, nil, nil, Options{
		OnError: func(_ error, msg string) { msgs = append(msgs, msg) },
	})

	done := make(chan error, 1)
	go func() {
		_, err := a.Listen(context.Background())
		done <- err
	}()
	<-rec.started
	assert.Equal(t, StateListening, a.State())

	_, err := a.Listen(context.Background())
	require.ErrorIs(t, err, ErrBusy)

	a.Stop()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, msgs)
	assert.Equal(t, StateIdle, a.State())
}

func TestAbortSilencesSpeech(t *testing.T) {
	rec := &fakeRecognizer{block: true, started: make(chan struct{})}
	syn := &fakeSynth{}
	a := NewAdapter(rec, syn, nil, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := a.Listen(context.Background())
		done <- err
	}()
	<-rec.started

	a.Abort()
	require.Error(t, <-done)
	assert.Equal(t, 1, syn.cancels)
}

func TestSpeakUsesActiveLocale(t *testing.T) {
	syn := &fakeSynth{}
	lang := "ta"
	a := NewAdapter(nil, syn, func() string { return lang }, Options{})

	require.NoError(t, a.Speak(context.Background(), "வணக்கம்"))
	lang = "fr"
	require.NoError(t, a.Speak(context.Background(), "Bonjour"))
	require.NoError(t, a.Speak(context.Background(), "   "))

	assert.Equal(t, []string{"ta-IN|வணக்கம்", "en-US|Bonjour"}, syn.spoken)
	assert.Equal(t, 2, syn.cancels, "each utterance interrupts the previous one")
}

func TestSpeakWithoutSynthesizer(t *testing.T) {
	var gotMsg string
	a := NewAdapter(nil, nil, fixedLang("hi"), Options{
		OnError: func(_ error, msg string) { gotMsg = msg },
	})

	err := a.Speak(context.Background(), "hello")
	require.ErrorIs(t, err, ErrUnsupported)
	assert.NotEmpty(t, gotMsg)
}

func TestLineRecognizer(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("go to courses\n\nswitch to jobs tab\n"))
	ctx := context.Background()

	got, err := r.Recognize(ctx, RecognizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "go to courses", got)

	_, err = r.Recognize(ctx, RecognizeOptions{})
	require.ErrorIs(t, err, ErrNoSpeech)

	got, err = r.Recognize(ctx, RecognizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "switch to jobs tab", got)

	_, err = r.Recognize(ctx, RecognizeOptions{})
	require.ErrorIs(t, err, ErrInputClosed)
}

func TestLineRecognizerHonorsContext(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("hello\n"))
	defer r.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got, err := r.Recognize(ctx, RecognizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	cancel()
	_, err = r.Recognize(ctx, RecognizeOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLineRecognizerCloseReleasesReader(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("hello\nagain\n"))

	got, err := r.Recognize(context.Background(), RecognizeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	// "again" is never read; Close must unblock the reader.
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Recognize(context.Background(), RecognizeOptions{})
	require.ErrorIs(t, err, ErrInputClosed)
}

func TestLineRecognizerCloseBeforeUse(t *testing.T) {
	r := NewLineRecognizer(strings.NewReader("hello\n"))
	require.NoError(t, r.Close())

	_, err := r.Recognize(context.Background(), RecognizeOptions{})
	require.ErrorIs(t, err, ErrInputClosed)
}

func TestWriterSynthesizer(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSynthesizer(&buf)

	require.NoError(t, s.Speak(context.Background(), "नमस्ते", "hi-IN"))
	s.Cancel()
	require.NoError(t, s.Speak(context.Background(), "hello", "en-US"))

	assert.Equal(t, "[hi-IN] नमस्ते\n[en-US] hello\n", buf.String())
}
