// Package translate translates UI strings into the active language through
// the Cloud Translation v2 API. Every failure degrades to the original text:
// callers never see an error from Translate or TranslateBatch.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/learnhub/voicenav/cache"
	"github.com/learnhub/voicenav/httpclient"
	"github.com/learnhub/voicenav/langmeta"
	"github.com/learnhub/voicenav/secret"
	"github.com/learnhub/voicenav/settings"
)

// DefaultEndpoint is the Cloud Translation v2 endpoint.
const DefaultEndpoint = "https://translation.googleapis.com/language/translate/v2"

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Options configures a Client.
type Options struct {
	// Endpoint is the translation API URL (default DefaultEndpoint).
	Endpoint string
	// APIKey is the credential injected by runtime configuration.
	APIKey string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// MaxConcurrent bounds TranslateAll's parallel languages. Default: 3.
	MaxConcurrent int
	// NoCache disables memoization so every call reaches the API.
	NoCache bool
	// Cache memoizes translations (default: in-memory LRU).
	Cache cache.Cache
	// Secrets is consulted when neither runtime config nor the credential
	// store has a key.
	Secrets secret.Fetcher
	// Selector provides the active language (default: English only).
	Selector *Selector
	// Tracker receives in-flight notifications (default: private tracker).
	Tracker *Tracker
	// Logger receives warnings about degraded translations.
	Logger *zap.Logger
}

func (o *Options) effectiveEndpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return DefaultEndpoint
}

func (o *Options) effectiveTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return 30 * time.Second
}

func (o *Options) effectiveMaxConcurrent() int {
	if o.MaxConcurrent > 0 {
		return o.MaxConcurrent
	}
	return 3
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

type translateRequest struct {
	Q      any    `json:"q"`
	Target string `json:"target"`
	Source string `json:"source"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// Client translates strings. It is safe for concurrent use.
type Client struct {
	opts    Options
	http    *http.Client
	log     *zap.Logger
	tracker *Tracker
	cache   cache.Cache

	mu     sync.Mutex
	apiKey string
}

// NewClient returns a Client. It has no credential until LoadCredential
// succeeds and passes text through unchanged until then.
func NewClient(opts Options) *Client {
	c := &Client{
		opts:    opts,
		http:    httpclient.New(opts.Proxy, opts.effectiveTimeout()),
		log:     opts.Logger,
		tracker: opts.Tracker,
		cache:   opts.Cache,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.tracker == nil {
		c.tracker = NewTracker(nil)
	}
	if c.cache == nil && !opts.NoCache {
		c.cache = cache.NewMemory(0)
	}
	return c
}

// LoadCredential acquires the API key: runtime configuration first, then
// the credential store, then the secret endpoint. On failure the client
// stays in pass-through mode; nothing is retried.
func (c *Client) LoadCredential(ctx context.Context) bool {
	key := settings.ResolveAPIKey(settings.ServiceTranslate, c.opts.APIKey)
	source := "config"
	if key == "" && c.opts.Secrets != nil {
		fetched, err := c.opts.Secrets.Fetch(ctx, settings.ServiceTranslate)
		switch {
		case err == nil:
			key, source = fetched, "secret endpoint"
		case errors.Is(err, secret.ErrNotFound):
			c.log.Warn("translation API key not registered")
		default:
			c.log.Warn("fetching translation API key failed", zap.Error(err))
		}
	}
	if key == "" {
		c.log.Info("translation disabled: no API key available")
		return false
	}

	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
	c.log.Debug("translation API key loaded", zap.String("source", source))
	return true
}

// HasCredential reports whether an API key is loaded.
func (c *Client) HasCredential() bool {
	return c.credential() != ""
}

func (c *Client) credential() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey
}

// Language returns the active target language.
func (c *Client) Language() string {
	if c.opts.Selector == nil {
		return langmeta.Default
	}
	return c.opts.Selector.Code()
}

// Translate translates text into the active language.
func (c *Client) Translate(ctx context.Context, text string) string {
	return c.TranslateTo(ctx, text, c.Language())
}

// TranslateTo translates text into lang. It returns text unchanged for
// English, empty input, a missing credential, or any request failure.
func (c *Client) TranslateTo(ctx context.Context, text, lang string) string {
	if text == "" || lang == langmeta.Default {
		return text
	}
	key := c.credential()
	if key == "" {
		return text
	}
	if v, ok := c.cached(ctx, text, lang); ok {
		return v
	}

	token := c.tracker.Begin()
	defer c.tracker.End(token)

	out, err := c.request(ctx, key, text, lang)
	if err == nil && len(out) == 0 {
		err = fmt.Errorf("empty translation response")
	}
	if err != nil {
		c.log.Warn("translation failed, using original text",
			zap.String("lang", lang), zap.Error(err))
		return text
	}

	c.store(ctx, text, lang, out[0])
	return out[0]
}

// TranslateBatch translates texts into the active language.
func (c *Client) TranslateBatch(ctx context.Context, texts []string) []string {
	return c.TranslateBatchTo(ctx, texts, c.Language())
}

// TranslateBatchTo translates texts into lang with a single request. Blank
// entries are not sent and come back verbatim at their original positions.
// On failure a copy of texts is returned unchanged.
func (c *Client) TranslateBatchTo(ctx context.Context, texts []string, lang string) []string {
	out := make([]string, len(texts))
	copy(out, texts)

	if len(texts) == 0 || lang == langmeta.Default {
		return out
	}
	key := c.credential()
	if key == "" {
		return out
	}

	var (
		positions []int
		pending   []string
	)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if v, ok := c.cached(ctx, text, lang); ok {
			out[i] = v
			continue
		}
		positions = append(positions, i)
		pending = append(pending, text)
	}
	if len(pending) == 0 {
		return out
	}

	token := c.tracker.Begin()
	defer c.tracker.End(token)

	translated, err := c.request(ctx, key, pending, lang)
	if err == nil && len(translated) != len(pending) {
		err = fmt.Errorf("got %d translations for %d strings", len(translated), len(pending))
	}
	if err != nil {
		c.log.Warn("batch translation failed, using original texts",
			zap.String("lang", lang), zap.Int("count", len(pending)), zap.Error(err))
		original := make([]string, len(texts))
		copy(original, texts)
		return original
	}

	for j, pos := range positions {
		out[pos] = translated[j]
		c.store(ctx, pending[j], lang, translated[j])
	}
	return out
}

// TranslateAll batch-translates texts into every language in langs
// concurrently. The only error it returns is a context error.
func (c *Client) TranslateAll(ctx context.Context, texts []string, langs []string) (map[string][]string, error) {
	var mu sync.Mutex
	results := make(map[string][]string, len(langs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.effectiveMaxConcurrent())
	for _, lang := range langs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			translated := c.TranslateBatchTo(gctx, texts, lang)
			mu.Lock()
			results[lang] = translated
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// request sends q (a string or []string) and returns the translations in
// request order.
func (c *Client) request(ctx context.Context, key string, q any, lang string) ([]string, error) {
	endpoint, err := url.Parse(c.opts.effectiveEndpoint())
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("key", key)
	endpoint.RawQuery = query.Encode()

	req := translateRequest{
		Q:      q,
		Target: lang,
		Source: langmeta.Default,
		Format: "html",
	}
	var resp translateResponse
	if err := httpclient.PostJSON(ctx, c.http, endpoint.String(), nil, req, &resp); err != nil {
		return nil, err
	}

	out := make([]string, len(resp.Data.Translations))
	for i, t := range resp.Data.Translations {
		out[i] = t.TranslatedText
	}
	return out, nil
}

func (c *Client) cached(ctx context.Context, text, lang string) (string, bool) {
	if c.cache == nil || c.opts.NoCache {
		return "", false
	}
	v, ok, err := c.cache.Get(ctx, text, lang)
	if err != nil {
		c.log.Debug("translation cache read failed", zap.Error(err))
		return "", false
	}
	return v, ok
}

func (c *Client) store(ctx context.Context, text, lang, translated string) {
	if c.cache == nil || c.opts.NoCache {
		return
	}
	if err := c.cache.Put(ctx, text, lang, translated); err != nil {
		c.log.Debug("translation cache write failed", zap.Error(err))
	}
}
