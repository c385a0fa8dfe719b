package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/Sovatiano/wiki-app/internal/core/domain"
	"github.com/Sovatiano/wiki-app/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestRate is the proactive throttle rate in requests per second.
	// The server has no published quota; this keeps an interactive client
	// from hammering it during rapid navigation.
	requestRate = 10

	// requestBurst allows short bursts, e.g. a page view fanning out into
	// content, collaborator and like fetches at once.
	requestBurst = 5
)

// TokenSource supplies the current bearer token. An empty string means no
// credential, in which case requests go out unauthenticated (guest mode).
type TokenSource interface {
	Token() string
}

// Client talks to a wiki server over HTTP. It implements the WikiAPI,
// AuthAPI and UsersAPI driven ports.
//
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a client for the wiki server at baseURL.
// An empty baseURL is allowed; requests then fail with ErrNoServer so the
// caller can prompt for configuration.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(requestRate), requestBurst),
	}
	c.http = &http.Client{
		Timeout:   DefaultTimeout,
		Transport: &authTransport{client: c, base: http.DefaultTransport},
	}
	return c
}

// SetTokenSource installs the bearer token supplier. Called once during
// wiring, after the session layer exists.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHandler installs the hook invoked whenever the server
// rejects the credential. The session layer uses it to clear itself, so an
// expired token logs the user out no matter which call tripped over it.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authTransport attaches the current bearer token to outgoing requests.
// The token can change between requests (login, logout), so the oauth2
// transport is built per request from the live token.
type authTransport struct {
	client *Client
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := ""
	if t.client.tokens != nil {
		token = t.client.tokens.Token()
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}
	bearer := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   t.base,
	}
	return bearer.RoundTrip(req)
}

// do performs one request against the server. body is JSON-encoded when
// non-nil; on 2xx the response body is decoded into out when out is non-nil.
// Every error it returns wraps one of the domain sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.baseURL == "" {
		return domain.ErrNoServer
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// statusError maps an HTTP error response onto the domain error taxonomy.
// The server reports failures as {"detail": ...}; the detail is surfaced
// verbatim so validation messages reach the user unchanged.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// Central side effect: any rejected credential drops the session.
		if c.onUnauthorized != nil {
			logger.Debug("credential rejected by %s %s, clearing session", method, path)
			c.onUnauthorized()
		}
		return wrapDetail(domain.ErrUnauthorized, detail)
	case http.StatusForbidden:
		return wrapDetail(domain.ErrForbidden, detail)
	case http.StatusNotFound:
		return wrapDetail(domain.ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return wrapDetail(domain.ErrValidation, detail)
	default:
		return fmt.Errorf("%s %s: server returned %d: %s", method, path, resp.StatusCode, detail)
	}
}

func wrapDetail(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// readDetail extracts the "detail" field from an error body. The detail is
// usually a string, but request-validation failures carry a structured list;
// those are passed through as compact JSON.
func readDetail(r io.Reader) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	return string(body.Detail)
}

// IsStatusError reports whether err carries one of the mapped HTTP statuses.
// Transport failures and context cancellations are not status errors.
func IsStatusError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation)
}
