// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package client provides typed accessors for the guest and RSVP resources
// of the guest list backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrNotFound = errors.New("not found")

// ResponseError is returned for every non-2xx answer of the backend.
type ResponseError struct {
	StatusCode int
	Response   string
}

func (e *ResponseError) Error() string {
	if e.Response == "" {
		return fmt.Sprintf("request failed with status: %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status: %d: %s", e.StatusCode, e.Response)
}

// Is matches ErrNotFound for 404 responses.
func (e *ResponseError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request including reading the response. It is
// applied per request and leaves a client given by WithHTTPClient untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client bundles the resource accessors sharing one base URL.
type Client struct {
	Guest *GuestClient
	RSVP  *RSVPClient

	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q needs scheme and host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: 10 * time.Second,
		logger:  slog.Default().WithGroup("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Guest = &GuestClient{c: c}
	c.RSVP = &RSVPClient{c: c}
	return c, nil
}

type response struct {
	Response string `json:"response"`
}

// do sends body as JSON and decodes a successful answer into out.
func (c *Client) do(ctx context.Context, method string, segments []string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := *c.baseURL
	u.RawPath = u.Path + "/" + strings.Join(escaped, "/")
	u.Path = u.Path + "/" + strings.Join(segments, "/")

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed", "method", method, "url", u.String(), "error", err)
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var r response
		_ = json.Unmarshal(data, &r)
		c.logger.DebugContext(ctx, "unexpected status", "method", method, "url", u.String(), "status", resp.StatusCode)
		return &ResponseError{StatusCode: resp.StatusCode, Response: r.Response}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
