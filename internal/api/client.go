// Package api implements the typed client for the panel's REST surface:
// server listing, resource readings, power signals, console commands, and
// the websocket credential exchange.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pterodash/pterodash/internal/errors"
	"github.com/pterodash/pterodash/internal/logger"
)

// Client talks to the panel's client API. It is stateless and safe for
// concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     logger.Logger
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

// NewClient creates a panel API client. baseURL may carry a trailing slash.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire shapes. The panel wraps everything in attribute envelopes.

type listResponse struct {
	Data []struct {
		Attributes struct {
			Identifier  string `json:"identifier"`
			UUID        string `json:"uuid"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Node        string `json:"node"`
		} `json:"attributes"`
	} `json:"data"`
}

type resourcesResponse struct {
	Attributes struct {
		CurrentState string `json:"current_state"`
		Resources    struct {
			MemoryBytes    uint64  `json:"memory_bytes"`
			CPUAbsolute    float64 `json:"cpu_absolute"`
			DiskBytes      uint64  `json:"disk_bytes"`
			NetworkRxBytes uint64  `json:"network_rx_bytes"`
			NetworkTxBytes uint64  `json:"network_tx_bytes"`
		} `json:"resources"`
	} `json:"attributes"`
}

type websocketResponse struct {
	Data struct {
		Token  string `json:"token"`
		Socket string `json:"socket"`
	} `json:"data"`
}

type panelError struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// ListServers returns all servers visible to the API key.
func (c *Client) ListServers(ctx context.Context) ([]Server, error) {
	var resp listResponse
	if err := c.get(ctx, "/api/client", &resp); err != nil {
		return nil, err
	}

	servers := make([]Server, 0, len(resp.Data))
	for _, item := range resp.Data {
		a := item.Attributes
		servers = append(servers, Server{
			Identifier:  a.Identifier,
			UUID:        a.UUID,
			Name:        a.Name,
			Description: a.Description,
			Node:        a.Node,
		})
	}
	return servers, nil
}

// Resources returns the current resource reading for a server.
func (c *Client) Resources(ctx context.Context, id string) (StatsSnapshot, error) {
	var resp resourcesResponse
	if err := c.get(ctx, "/api/client/servers/"+id+"/resources", &resp); err != nil {
		return StatsSnapshot{}, err
	}

	a := resp.Attributes
	return StatsSnapshot{
		State:       PowerState(a.CurrentState),
		CPUPercent:  a.Resources.CPUAbsolute,
		MemoryBytes: a.Resources.MemoryBytes,
		DiskBytes:   a.Resources.DiskBytes,
		Network: NetworkCounters{
			RxBytes: a.Resources.NetworkRxBytes,
			TxBytes: a.Resources.NetworkTxBytes,
		},
	}, nil
}

// Power sends a power signal. The transition is asynchronous on the remote
// side; a nil return only means the signal was accepted.
func (c *Client) Power(ctx context.Context, id string, signal PowerSignal) error {
	if !signal.Valid() {
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("Unknown power signal: %s", signal),
			"Use start, stop, restart, or kill")
	}
	return c.post(ctx, "/api/client/servers/"+id+"/power",
		map[string]string{"signal": string(signal)})
}

// SendCommand delivers a console command over REST. This is an alternative
// to the websocket 'send command' frame and works without an open session.
func (c *Client) SendCommand(ctx context.Context, id, command string) error {
	return c.post(ctx, "/api/client/servers/"+id+"/command",
		map[string]string{"command": command})
}

// WebsocketCredentials exchanges the API key for a short-lived websocket
// token and socket address. Each call returns a fresh single-use pair.
func (c *Client) WebsocketCredentials(ctx context.Context, id string) (Credentials, error) {
	var resp websocketResponse
	if err := c.get(ctx, "/api/client/servers/"+id+"/websocket", &resp); err != nil {
		return Credentials{}, err
	}
	if resp.Data.Token == "" || resp.Data.Socket == "" {
		return Credentials{}, errors.New(errors.ErrAPI,
			"Panel returned incomplete websocket credentials",
			"Check the API key has websocket permission for this server")
	}
	return Credentials{Token: resp.Data.Token, Socket: resp.Data.Socket}, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrAPI, "Failed to encode request", "")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI, "Failed to build request", "")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Cannot reach panel at "+c.baseURL,
			"Check the panel URL and your network connection")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Panel returned an unreadable response",
			"The panel may be behind a proxy serving an error page")
	}
	return nil
}

// statusError maps a non-2xx response to a structured error, pulling the
// panel's own error detail when the body carries one.
func (c *Client) statusError(resp *http.Response) error {
	detail := ""
	var perr panelError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&perr); err == nil && len(perr.Errors) > 0 {
		detail = perr.Errors[0].Detail
	}

	msg := fmt.Sprintf("Panel request failed (%s)", resp.Status)
	if detail != "" {
		msg = fmt.Sprintf("Panel request failed (%s): %s", resp.Status, detail)
	}

	suggestion := ""
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		suggestion = "Check the API key is valid and has access to this server"
	case http.StatusNotFound:
		suggestion = "Check the server identifier; run 'pterodash servers' to list them"
	case http.StatusTooManyRequests:
		suggestion = "The panel is rate limiting requests; wait a moment and retry"
	}

	return errors.New(errors.ErrAPI, msg, suggestion)
}
