// Package proxy implements the upstream forwarder: a dumb pass-through
// from the gateway's catch-all route to the fixed backend host. No retry,
// no circuit breaking; upstream responses come back verbatim.
package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/textproto"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/models"
)

// Hop-by-hop headers are meaningful only for a single transport link and
// must not be forwarded (RFC 7230 section 6.1).
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Forwarder relays requests to the upstream backend, preserving method,
// path, query string, headers and body in both directions.
type Forwarder struct {
	base  string
	httpc *http.Client
}

// New creates a forwarder for the upstream at base (scheme included).
// A zero timeout means requests are never bounded, matching the original
// behavior; deployments can opt in to one.
func New(base string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		base: base,
		httpc: &http.Client{
			Timeout: timeout,
			// The caller gets the upstream's redirect response as-is.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ServeHTTP forwards the inbound request and streams the upstream
// response back unmodified.
func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := f.base + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	copyHeaders(req.Header, r.Header)

	resp, err := f.httpc.Do(req)
	if err != nil {
		log.Error().Err(err).Str("target", target).Msg("Upstream request failed")
		writeError(w, http.StatusBadGateway, err)
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Err(err).Str("target", target).Msg("Copying upstream response body failed")
	}
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if isHopByHop(key) {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

func isHopByHop(key string) bool {
	canonical := textproto.CanonicalMIMEHeaderKey(key)
	for _, h := range hopByHopHeaders {
		if canonical == h {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: err.Error()})
}
