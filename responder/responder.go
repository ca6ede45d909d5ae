// Package responder talks to the platform's conversational assistant
// endpoint, which answers utterances the local rules do not understand.
package responder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/learnhub/voicenav/httpclient"
)

// DefaultHistory is the number of messages kept as conversation context.
const DefaultHistory = 10

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNotConfigured is returned by Ask when no endpoint is set.
var ErrNotConfigured = errors.New("responder endpoint not configured")

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Messages       []Message `json:"messages"`
	UserRole       string    `json:"userRole"`
	IsVoiceCommand bool      `json:"isVoiceCommand"`
	CurrentPath    string    `json:"currentPath"`
	Language       string    `json:"language"`
}

// Reply is the endpoint's answer.
type Reply struct {
	Response      string `json:"response"`
	LanguageToSet string `json:"languageToSet,omitempty"`
}

// Query describes one utterance and where the user is.
type Query struct {
	Text        string
	Role        string
	CurrentPath string
	Language    string
}

// Options configures a Client.
type Options struct {
	Endpoint string
	// APIKey is sent as a bearer credential when set.
	APIKey  string
	Proxy   string
	Timeout time.Duration
	// History bounds the conversation context. Default: DefaultHistory.
	History int
	Logger  *zap.Logger
}

func (o *Options) effectiveHistory() int {
	if o.History > 0 {
		return o.History
	}
	return DefaultHistory
}

// Client is safe for concurrent use.
type Client struct {
	opts Options
	http *http.Client
	log  *zap.Logger

	mu      sync.Mutex
	history []Message
}

// NewClient returns a Client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{opts: opts, http: httpclient.New(opts.Proxy, timeout), log: log}
}

// Ask sends q with the recent conversation and records the exchange when it
// succeeds.
func (c *Client) Ask(ctx context.Context, q Query) (Reply, error) {
	if c.opts.Endpoint == "" {
		return Reply{}, ErrNotConfigured
	}

	turn := Message{Role: RoleUser, Content: q.Text}
	req := request{
		Messages:       append(c.History(), turn),
		UserRole:       q.Role,
		IsVoiceCommand: true,
		CurrentPath:    q.CurrentPath,
		Language:       q.Language,
	}
	var headers map[string]string
	if c.opts.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.opts.APIKey}
	}

	var reply Reply
	if err := httpclient.PostJSON(ctx, c.http, c.opts.Endpoint, headers, req, &reply); err != nil {
		return Reply{}, fmt.Errorf("asking responder: %w", err)
	}
	reply.Response = strings.TrimSpace(reply.Response)
	reply.LanguageToSet = strings.TrimSpace(reply.LanguageToSet)
	if reply.Response == "" {
		return Reply{}, fmt.Errorf("asking responder: empty response")
	}

	c.record(turn, Message{Role: RoleAssistant, Content: reply.Response})
	c.log.Debug("responder replied",
		zap.Int("chars", len(reply.Response)), zap.String("languageToSet", reply.LanguageToSet))
	return reply, nil
}

// History returns a copy of the retained conversation, oldest first.
func (c *Client) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}

// Reset forgets the conversation.
func (c *Client) Reset() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}

func (c *Client) record(msgs ...Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, msgs...)
	if limit := c.opts.effectiveHistory(); len(c.history) > limit {
		c.history = append([]Message(nil), c.history[len(c.history)-limit:]...)
	}
}
