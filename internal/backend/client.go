package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// DefaultBaseURL is where the sales backend listens in development.
const DefaultBaseURL = "http://localhost:8080/api"

// Config holds sales backend client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns configuration pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}

// Observer is notified once per completed backend call. status is 0 when
// the call failed before a response arrived.
type Observer interface {
	ObserveBackend(op string, status int, elapsed time.Duration)
}

// Client talks to the sales backend REST API. A Client without a token can
// only log in; WithToken derives an authenticated copy.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

// New creates a backend client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger = logger.With("component", "backend")
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &loggingRoundTripper{inner: http.DefaultTransport, logger: logger},
		},
		logger: logger,
	}
}

// SetObserver registers a call observer. It must be called before use.
func (c *Client) SetObserver(obs Observer) {
	c.observer = obs
}

// WithToken returns a copy of the client that sends the bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) newRequest(ctx context.Context, method, relPath string, query url.Values, body any) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, relPath)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// send executes req and returns the response body of a 2xx response.
func (c *Client) send(req *http.Request, op string) ([]byte, http.Header, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, time.Since(start))
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.observe(op, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, newAPIError(op, resp.StatusCode, data)
	}
	return data, resp.Header, nil
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, relPath string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, relPath, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data, _, err := c.send(req, op)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveBackend(op, status, elapsed)
	}
}
