// Package api talks to the add-on review API and exposes local files through
// the same Source interface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/colonyops/lintlens/internal/core/logging"
)

// DefaultVersion is the API version path segment used when none is set.
const DefaultVersion = "v4"

// ErrNotFound is matched by StatusError values with a 404 status.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status for %s %s: %d", e.Method, e.Endpoint, e.StatusCode)
}

// Is reports a 404 as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is a review API client.
type Client struct {
	baseURL string
	version string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithVersion sets the API version path segment.
func WithVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		version: DefaultVersion,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizeEndpoint makes sure endpoint starts and ends with "/".
func normalizeEndpoint(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint
}

// endpointURL builds the full URL for an API endpoint.
func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := fmt.Sprintf("%s/api/%s%s", c.baseURL, c.version, normalizeEndpoint(endpoint))
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// resolve turns a location returned by the API (absolute URL or
// server-relative path) into an absolute URL.
func (c *Client) resolve(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse location %q: %w", location, err)
	}
	if u.IsAbs() {
		return location, nil
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return base.ResolveReference(u).String(), nil
}

// callAPI performs a request against an API endpoint and decodes the JSON
// response into out.
func (c *Client) callAPI(ctx context.Context, method, endpoint string, query url.Values, out any) error {
	body, err := c.do(ctx, method, c.endpointURL(endpoint, query))
	if err != nil {
		return err
	}
	defer c.close(body)

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL string) (io.ReadCloser, error) {
	log := logging.Component("api")

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "lintlens")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Str("url", rawURL).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.close(resp.Body)
		serr := &StatusError{Method: method, Endpoint: req.URL.RequestURI(), StatusCode: resp.StatusCode}
		log.Debug().Ctx(ctx).Err(serr).Msg("unexpected status")
		return nil, serr
	}

	return resp.Body, nil
}

func (c *Client) close(body io.Closer) {
	if err := body.Close(); err != nil {
		logging.Component("api").Debug().Err(err).Msg("close response body")
	}
}

// Ping checks that the API answers. Any response below 500 counts as
// reachable; the API root is not guaranteed to exist.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodGet, c.endpointURL("", nil))
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.StatusCode < http.StatusInternalServerError {
			return nil
		}
		return err
	}
	c.close(body)
	return nil
}
