// Package secret fetches API keys from the platform's secret endpoint, a
// serverless function that returns the key registered for a service.
package secret

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/learnhub/voicenav/httpclient"
)

// ErrNotFound is returned when the endpoint has no key for the service.
var ErrNotFound = errors.New("secret not found")

// Fetcher returns the API key registered for a service.
type Fetcher interface {
	Fetch(ctx context.Context, service string) (string, error)
}

type fetchRequest struct {
	Service string `json:"service"`
}

type fetchResponse struct {
	APIKey string `json:"apiKey"`
	Error  string `json:"error,omitempty"`
}

// Client fetches secrets over HTTP.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewClient returns a Client for endpoint. token, when set, is sent as a
// bearer credential.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     httpclient.New("", timeout),
	}
}

// Fetch asks the endpoint for the key of service.
func (c *Client) Fetch(ctx context.Context, service string) (string, error) {
	if c == nil || c.endpoint == "" {
		return "", fmt.Errorf("secret endpoint not configured")
	}

	var headers map[string]string
	if c.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.token}
	}

	var resp fetchResponse
	err := httpclient.PostJSON(ctx, c.http, c.endpoint, headers, fetchRequest{Service: service}, &resp)
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetching %s secret: %w", service, err)
	}

	key := strings.TrimSpace(resp.APIKey)
	if key == "" {
		return "", ErrNotFound
	}
	return key, nil
}
