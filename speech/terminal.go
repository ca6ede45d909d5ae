package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// LineRecognizer treats each line of an io.Reader as one utterance. It
// lets the assistant run against a terminal or a transcript file.
type LineRecognizer struct {
	r         io.Reader
	once      sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
	err       error
}

// NewLineRecognizer returns a LineRecognizer reading from r.
func NewLineRecognizer(r io.Reader) *LineRecognizer {
	return &LineRecognizer{r: r, lines: make(chan string), done: make(chan struct{})}
}

func (l *LineRecognizer) start() {
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			select {
			case l.lines <- sc.Text():
			case <-l.done:
				return
			}
		}
		l.err = sc.Err()
	}()
}

// Close stops the reader goroutine, dropping any unread lines.
// Recognize returns ErrInputClosed afterwards. A reader blocked in Read is
// not interrupted.
func (l *LineRecognizer) Close() error {
	l.closeOnce.Do(func() { close(l.done) })
	return nil
}

// Recognize returns the next line. A blank line is ErrNoSpeech; the end of
// input is ErrInputClosed.
func (l *LineRecognizer) Recognize(ctx context.Context, _ RecognizeOptions) (string, error) {
	select {
	case <-l.done:
		return "", ErrInputClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.once.Do(l.start)
	select {
	case <-l.done:
		return "", ErrInputClosed
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", fmt.Errorf("%w: %v", ErrInputClosed, l.err)
			}
			return "", ErrInputClosed
		}
		if line == "" {
			return "", ErrNoSpeech
		}
		return line, nil
	}
}

// WriterSynthesizer "speaks" by writing "[locale] text" lines to w.
type WriterSynthesizer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSynthesizer returns a WriterSynthesizer writing to w.
func NewWriterSynthesizer(w io.Writer) *WriterSynthesizer {
	return &WriterSynthesizer{w: w}
}

// Speak writes one line.
func (s *WriterSynthesizer) Speak(ctx context.Context, text, locale string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "[%s] %s\n", locale, text)
	return err
}

// Cancel is a no-op: a written line cannot be taken back.
func (s *WriterSynthesizer) Cancel() {}
