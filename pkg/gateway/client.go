package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// Defaults for the hosted CBORG gateway.
const (
	DefaultBaseURL     = "https://api.cborg.lbl.gov"
	DefaultCatalogPath = "/model/info"
)

// Auth holds the key sent with every request.
type Auth struct {
	Key    string // API key value, passed through unchanged.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// Client fetches the model catalog. The zero value is not usable; build one
// with New.
type Client struct {
	Auth        Auth
	BaseURL     string            // API base URL (no trailing slash).
	CatalogPath string            // Path of the catalog endpoint.
	Client      *http.Client      // HTTP client; falls back to a cached default.
	Headers     map[string]string // Extra headers applied to every request.
	Timeout     time.Duration     // Per-fetch timeout; 0 means none.
	Logger      *slog.Logger      // Optional; nil discards.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates a Client for baseURL with the given key and the default
// catalog path. A nil client falls back to a default at call time.
func New(baseURL, key string, client *http.Client) *Client {
	return &Client{
		Auth:        Auth{Key: key},
		BaseURL:     baseURL,
		CatalogPath: DefaultCatalogPath,
		Client:      client,
	}
}

// WithKey returns a copy of the client that authenticates with key.
func (c *Client) WithKey(key string) *Client {
	return &Client{
		Auth:        Auth{Key: key, Header: c.Auth.Header, Scheme: c.Auth.Scheme},
		BaseURL:     c.BaseURL,
		CatalogPath: c.CatalogPath,
		Client:      c.Client,
		Headers:     c.Headers,
		Timeout:     c.Timeout,
		Logger:      c.Logger,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}

	c.clientOnce.Do(func() {
		c.defaultClient = &http.Client{}
	})

	return c.defaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}

	if c.Auth.Key != "" {
		header := c.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := c.Auth.Key
		if header == "Authorization" {
			scheme := c.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if c.Auth.Scheme != "" {
			value = c.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// FetchCatalog performs exactly one GET of the catalog endpoint and returns
// the raw elements of the response's "data" array in order.
func (c *Client) FetchCatalog(ctx context.Context) ([]json.RawMessage, error) {
	if c.Auth.Key == "" {
		return nil, ErrMissingKey
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := c.NewRequest(ctx, http.MethodGet, c.CatalogPath, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	log := c.logger().With("url", req.URL.String())
	start := time.Now()

	resp, err := c.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
	if err != nil {
		log.Warn("catalog request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("gateway: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("catalog request rejected", "status", resp.StatusCode, "duration", time.Since(start))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	entries, err := parseCatalog(body)
	if err != nil {
		log.Warn("catalog response malformed", "error", err)
		return nil, err
	}

	log.Debug("catalog fetched", "status", resp.StatusCode, "entries", len(entries), "duration", time.Since(start))

	return entries, nil
}

func parseCatalog(body []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, &FormatError{Reason: "body is not valid JSON"}
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, &FormatError{Reason: `missing "data" array`}
	}

	var entries []json.RawMessage
	data.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, json.RawMessage(value.Raw))
		return true
	})

	if entries == nil {
		entries = []json.RawMessage{}
	}

	return entries, nil
}
