// Package aims is the typed client for the A.I.M.S backend API. Every
// operation returns a parsed payload or an *APIError; a 401 invalidates
// the local session before the error is ever visible to the caller.
package aims

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/session"
)

// Client talks to the backend, usually through the gateway's forwarder.
// It owns a cookie jar because the backend issues its credential as a
// cookie on login.
type Client struct {
	baseURL      string
	httpc        *http.Client
	store        session.Store
	onInvalidate func()
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The cookie jar is
// preserved if the replacement has none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h.Jar == nil {
			h.Jar = c.httpc.Jar
		}
		c.httpc = h
	}
}

// WithTimeout bounds every request. The default is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithInvalidateHook registers a callback run after a 401 clears the
// session, before the error returns. The CLI uses it to announce the
// redirect to login.
func WithInvalidateHook(fn func()) Option {
	return func(c *Client) { c.onInvalidate = fn }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Jar: jar},
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one request and enforces the uniform status contract: any
// response other than want becomes an *APIError built from the backend's
// {"error": ...} body. The caller owns the response body on success.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, want int) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, transportError(err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, transportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode != want {
		defer resp.Body.Close()
		message := decodeErrorBody(resp.Body)

		// Invalidation must complete before the error exists, so no
		// caller can observe an auth failure with a session intact.
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateSession()
		}

		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: message,
			Kind:    kindFromStatus(resp.StatusCode),
		}
	}
	return resp, nil
}

// getJSON fetches path with a 200 contract and decodes the body into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, http.StatusOK)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		var zero T
		return zero, transportError(err)
	}
	return out, nil
}

func (c *Client) invalidateSession() {
	_ = c.store.Clear()
	if c.onInvalidate != nil {
		c.onInvalidate()
	}
}

func decodeErrorBody(r io.Reader) string {
	var body models.ErrorResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.Error == "" {
		return "request failed"
	}
	return body.Error
}

// locationID extracts the new resource id from a Location header, the
// contract for every 201 response.
func locationID(resp *http.Response) (string, error) {
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", transportError(errMissingLocation)
	}
	parts := strings.Split(strings.TrimRight(loc, "/"), "/")
	return parts[len(parts)-1], nil
}

var errMissingLocation = &missingLocationError{}

type missingLocationError struct{}

func (*missingLocationError) Error() string { return "response is missing a Location header" }

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	return q
}
