package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// CacheMode is the caller's cache directive for a single call.
type CacheMode int

const (
	CacheDefault CacheMode = iota
	// CacheNoStore forces the backend (and any cache in between) to serve fresh state.
	CacheNoStore
)

// Request describes one call. It is never modified by the client.
type Request struct {
	Method  string
	Data    any // serialized as the JSON body when non-nil
	Cache   CacheMode
	Headers map[string]string

	// Key joins concurrent calls that share it into a single round trip.
	// Keys are chosen by the caller; the registry forgets a key as soon as its call completes,
	// or earlier when ForgetInFlight is called for the endpoint's path.
	Key string

	// IdempotencyKey is forwarded as the Idempotency-Key header.
	IdempotencyKey string
}

// Client is the typed HTTP client for the event backend.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	headers   map[string]string
	inflight  singleflight.Group

	mu     sync.Mutex
	epochs map[string]uint64 // per endpoint path, bumped by ForgetInFlight
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a whole-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			clone := *c.http
			clone.Timeout = d
			c.http = &clone
		}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for endpoints relative to baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "EventConsole/1.0",
		headers:   make(map[string]string),
		epochs:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the transport for calls that do not go through the JSON wrapper.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

type response struct {
	status     int
	statusLine string
	header     http.Header
	body       []byte
}

// Call issues the request and decodes a successful JSON body into T.
//
// A 204, an empty body, a non-JSON content type or an undecodable body all yield (nil, nil).
// Failures are always *Error.
func Call[T any](ctx context.Context, c *Client, endpoint string, req Request) (*T, error) {
	res, err := c.send(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}

	if res.status < 200 || res.status >= 300 {
		apiErr := NewResponseError(res.status, res.statusLine, res.body)
		log.Error().
			Str("method", method(req)).
			Str("endpoint", endpoint).
			Int("status_code", res.status).
			Str("code", apiErr.Code).
			Msg(apiErr.Message)
		return nil, apiErr
	}

	if res.status == http.StatusNoContent || len(bytes.TrimSpace(res.body)) == 0 {
		return nil, nil
	}
	if ct := res.header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(res.body, &out); err != nil {
		log.Warn().
			Str("endpoint", endpoint).
			Err(err).
			Msg("could not decode response body, treating as empty")
		return nil, nil
	}
	return &out, nil
}

// Exec issues the request and discards any response body.
func (c *Client) Exec(ctx context.Context, endpoint string, req Request) error {
	_, err := Call[json.RawMessage](ctx, c, endpoint, req)
	return err
}

// ForgetInFlight stops later calls on the given endpoint paths from joining round trips that
// are already running. Query strings are ignored, so "/events" covers every page of /events.
func (c *Client) ForgetInFlight(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		c.epochs[endpointPath(p)]++
	}
}

func (c *Client) flightKey(endpoint, key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return key + "#" + strconv.FormatUint(c.epochs[endpointPath(endpoint)], 10)
}

func endpointPath(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if len(endpoint) > 1 {
		endpoint = strings.TrimRight(endpoint, "/")
	}
	return endpoint
}

func (c *Client) send(ctx context.Context, endpoint string, req Request) (*response, error) {
	if req.Key == "" {
		return c.roundTrip(ctx, endpoint, req)
	}

	// The shared round trip outlives any single caller; each caller stops waiting on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(c.flightKey(endpoint, req.Key), func() (any, error) {
		return c.roundTrip(shared, endpoint, req)
	})
	select {
	case <-ctx.Done():
		return nil, NewTransportError(ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			log.Debug().Str("key", req.Key).Msg("joined in-flight request")
		}
		return r.Val.(*response), nil
	}
}

func (c *Client) roundTrip(ctx context.Context, endpoint string, req Request) (*response, error) {
	var body io.Reader
	if req.Data != nil {
		b, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	url := c.baseURL + endpoint
	m := method(req)

	httpReq, err := http.NewRequestWithContext(ctx, m, url, body)
	if err != nil {
		return nil, NewTransportError(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	if req.Cache == CacheNoStore {
		httpReq.Header.Set("Cache-Control", "no-store")
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.Data != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	log.Debug().
		Str("method", m).
		Str("url", url).
		Msg("making HTTP request")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Error().
			Str("method", m).
			Str("url", url).
			Err(err).
			Msg("HTTP request failed")
		return nil, NewTransportError(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().
			Str("method", m).
			Str("url", url).
			Int("status_code", resp.StatusCode).
			Err(err).
			Msg("reading HTTP response failed")
		return nil, NewTransportError(fmt.Errorf("read response body: %w", err))
	}

	log.Debug().
		Str("method", m).
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(b)).
		Dur("took", time.Since(start)).
		Msg("received HTTP response")

	return &response{
		status:     resp.StatusCode,
		statusLine: resp.Status,
		header:     resp.Header,
		body:       b,
	}, nil
}

func method(req Request) string {
	if req.Method == "" {
		return http.MethodGet
	}
	return req.Method
}
