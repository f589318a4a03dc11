// Copyright (c) 2025 Organizer
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"organizer/cli/internal/logging"

	"github.com/google/uuid"
)

const (
	// APIPrefix is prepended to every request path.
	APIPrefix = "/api"
	// SessionCookieName is the backend's session cookie.
	SessionCookieName = "JSESSIONID"
	// DefaultTimeout bounds every request made with the default HTTP client.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the CLI to the backend.
	DefaultUserAgent = "organizer-cli"

	maxErrorBody = 4 << 10
)

// Client implements API over the platform's REST endpoints.
type Client struct {
	// baseURL is the platform origin, e.g. "https://organizer.example.com"
	baseURL *url.URL
	// client carries the cookie jar holding the session cookie
	client *http.Client
	// onSessionExpired runs on every 401 before the call fails
	onSessionExpired SessionExpiredFunc
	logger           *logging.Logger
	userAgent        string
	timeout          time.Duration
}

// newClient parses the origin, applies options and attaches a cookie jar so
// the session cookie rides along on every request.
func newClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:          u,
		onSessionExpired: func(context.Context) {},
		logger:           logging.Nop(),
		userAgent:        DefaultUserAgent,
		timeout:          DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	if c.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc := *c.client
		hc.Jar = jar
		c.client = &hc
	}
	return c, nil
}

// BaseURL returns the platform origin the client talks to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// SetSessionCookie seeds the jar with the backend session cookie.
func (c *Client) SetSessionCookie(value string) {
	c.client.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  SessionCookieName,
		Value: value,
		Path:  "/",
	}})
}

// ClearSessionCookie drops the session cookie from the jar.
func (c *Client) ClearSessionCookie() {
	c.client.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   SessionCookieName,
		Path:   "/",
		MaxAge: -1,
	}})
}

// SessionCookie returns the session cookie currently held in the jar, which
// changes when the backend rotates the session.
func (c *Client) SessionCookie() string {
	for _, ck := range c.client.Jar.Cookies(c.endpointURL("/")) {
		if ck.Name == SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// Get issues GET <base>/api<path> and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST <base>/api<path> with in as the JSON body (nil for none)
// and decodes the response into out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) endpointURL(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + APIPrefix + "/" + strings.TrimLeft(path, "/")
	return &u
}

func (c *Client) setStandardHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path).String(), body)
	if err != nil {
		return err
	}
	c.setStandardHeaders(req)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", c.logger.Args(
			"method", method, "path", path, "error", logging.Mask(err.Error()),
		))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request done", c.logger.Args(
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"elapsed", time.Since(started).Round(time.Millisecond),
	))

	if resp.StatusCode == http.StatusUnauthorized {
		c.onSessionExpired(ctx)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s %s response: empty body", method, path)
		}
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
