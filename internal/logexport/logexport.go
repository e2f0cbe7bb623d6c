// Package logexport uploads console logs to a paste service and returns the
// shareable URL.
package logexport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
)

// DefaultEndpoint is the mclo.gs log paste API.
const DefaultEndpoint = "https://api.mclo.gs/1/log"

// Client uploads log documents. Each Upload is one-shot; the service returns
// a permanent URL.
type Client struct {
	endpoint string
	http     *http.Client
	log      logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates an upload client. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

// Upload posts the log content and returns the shareable URL.
func (c *Client) Upload(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errors.New(errors.ErrAPI, "Nothing to upload, the console log is empty", "")
	}

	form := url.Values{"content": {content}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrAPI, "Failed to build upload request", "")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Debug("uploading %d bytes of console log", len(content))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrAPI,
			"Cannot reach the log upload service",
			"Check your network connection")
	}
	defer resp.Body.Close()

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrAPI,
			"Log upload service returned an unreadable response", "")
	}

	if !decoded.Success || decoded.URL == "" {
		msg := "Log upload rejected"
		if decoded.Error != "" {
			msg = "Log upload rejected: " + decoded.Error
		}
		return "", errors.New(errors.ErrAPI, msg, "")
	}
	return decoded.URL, nil
}
