package proxy_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/proxy"
)

func TestForwarderPassesRequestThrough(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotHeader, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"hello":"world"}`))
	}))
	defer upstream.Close()

	f := proxy.New(upstream.URL, 0)
	req := httptest.NewRequest(http.MethodPost, "/hosts?page=2&pageSize=5", strings.NewReader(`{"hostname":"web-1"}`))
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()

	f.ServeHTTP(rec, req)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/hosts", gotPath)
	assert.Equal(t, "page=2&pageSize=5", gotQuery)
	assert.Equal(t, "abc-123", gotHeader)
	assert.Equal(t, `{"hostname":"web-1"}`, gotBody)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "yes", rec.Header().Get("X-Upstream"))
	assert.Equal(t, `{"hello":"world"}`, rec.Body.String())
}

func TestForwarderStripsHopByHopHeaders(t *testing.T) {
	var gotConnection, gotKeepAlive, gotAuthorization string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotConnection = r.Header.Get("Connection")
		gotKeepAlive = r.Header.Get("Keep-Alive")
		gotAuthorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	f := proxy.New(upstream.URL, 0)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Keep-Alive", "timeout=5")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	f.ServeHTTP(rec, req)

	assert.Empty(t, gotConnection)
	assert.Empty(t, gotKeepAlive)
	assert.Equal(t, "Bearer token", gotAuthorization)
}

func TestForwarderDoesNotFollowRedirects(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	defer upstream.Close()

	f := proxy.New(upstream.URL, 0)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestForwarderReturnsBadGatewayWhenUpstreamIsDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	f := proxy.New(upstream.URL, 0)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hosts", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}
