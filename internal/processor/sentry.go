package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/models"
)

// SentrySource scans a Sentry project for unhandled error events. The
// provider supplies orgSlug, projSlug and token fields; an optional
// apiURL field overrides the public API base.
type SentrySource struct {
	httpc   *http.Client
	apiBase string
}

// NewSentrySource creates a source against the public Sentry API.
func NewSentrySource() *SentrySource {
	return &SentrySource{
		httpc:   &http.Client{Timeout: 30 * time.Second},
		apiBase: "https://sentry.io/api/0",
	}
}

// Name returns the provider name this source answers to.
func (s *SentrySource) Name() string { return "sentry" }

type sentryTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type sentryEvent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Culprit string      `json:"culprit"`
	Tags    []sentryTag `json:"tags"`
	Errors  []struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"errors"`
}

// UnresolvedAlerts pages through the project's events and returns an
// Alert for every unhandled one.
func (s *SentrySource) UnresolvedAlerts(ctx context.Context, provider models.Provider) ([]Alert, error) {
	org, ok := provider.Field("orgSlug")
	if !ok {
		return nil, fmt.Errorf("provider %q is missing the orgSlug field", provider.Name)
	}
	proj, ok := provider.Field("projSlug")
	if !ok {
		return nil, fmt.Errorf("provider %q is missing the projSlug field", provider.Name)
	}
	token, ok := provider.Field("token")
	if !ok {
		return nil, fmt.Errorf("provider %q is missing the token field", provider.Name)
	}

	base := s.apiBase
	if f, ok := provider.Field("apiURL"); ok && f.Value != "" {
		base = strings.TrimRight(f.Value, "/")
	}

	var alerts []Alert
	cursor := ""
	for {
		target := fmt.Sprintf("%s/projects/%s/%s/events/?full=1", base, org.Value, proj.Value)
		if cursor != "" {
			target += "&cursor=" + cursor
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token.Value)

		resp, err := s.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("sentry returned status %d", resp.StatusCode)
		}

		var events []sentryEvent
		err = json.NewDecoder(resp.Body).Decode(&events)
		link := resp.Header.Get("Link")
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		for _, event := range events {
			if !event.unhandled() {
				continue
			}
			alerts = append(alerts, event.toAlert())
		}

		next, more := nextCursor(link)
		if !more {
			break
		}
		cursor = next
	}
	return alerts, nil
}

func (e sentryEvent) unhandled() bool {
	for _, tag := range e.Tags {
		if tag.Key == "handled" && tag.Value == "no" {
			return true
		}
	}
	return false
}

func (e sentryEvent) toAlert() Alert {
	file := ""
	if len(e.Errors) > 0 {
		file = e.Errors[0].Data.URL
	}

	hostnames := []string{}
	for _, tag := range e.Tags {
		if tag.Key == "server_name" {
			hostnames = append(hostnames, tag.Value)
		}
	}

	fromDependency := strings.Contains(file, "node_modules")
	sum := sha256.Sum256([]byte(e.Title + "\n" + e.Culprit + "\n" + file))

	return Alert{
		ID:             e.ID,
		Title:          e.Title,
		Culprit:        e.Culprit,
		Hostnames:      hostnames,
		Hash:           hex.EncodeToString(sum[:]),
		FromDependency: fromDependency,
		RootCause:      rootCause(e, file, fromDependency),
	}
}

var (
	pnpmModuleRe = regexp.MustCompile(`(?i)(@?[^@/]+)@([.0-9]+)`)
	npmModuleRe  = regexp.MustCompile(`(?i)node_modules/([^/]+)/`)
)

// rootCause makes a best-effort guess at what broke. Dependency paths
// point at the offending module; anything else is pinned on the culprit
// endpoint.
func rootCause(e sentryEvent, file string, fromDependency bool) string {
	switch {
	case fromDependency:
		if strings.Contains(file, "node_modules/.pnpm/") {
			if m := pnpmModuleRe.FindStringSubmatch(file); m != nil {
				return fmt.Sprintf("Dependency issue with %s@%s", m[1], m[2])
			}
		}
		if m := npmModuleRe.FindStringSubmatch(file); m != nil {
			return fmt.Sprintf("Dependency issue with %s@latest", m[1])
		}
		return "Unknown dependency issue"
	case file != "":
		return fmt.Sprintf("Endpoint %s", e.Culprit)
	default:
		log.Warn().Str("event", e.ID).Msg("Could not find the file path where the error was raised")
		return "Unknown issue"
	}
}

// nextCursor parses Sentry's Link pagination header and returns the next
// cursor, along with whether more results exist. Example value:
//
//	<https://sentry.io/...&cursor=0:0:0>; rel="previous"; results="false"; cursor="0:0:0",
//	<https://sentry.io/...&cursor=0:100:0>; rel="next"; results="true"; cursor="0:100:0"
func nextCursor(linkHeader string) (string, bool) {
	for _, link := range strings.Split(linkHeader, ",") {
		rel, results, cursor := "", "", ""
		for _, part := range strings.Split(link, ";") {
			part = strings.TrimSpace(part)
			switch {
			case strings.HasPrefix(part, "rel="):
				rel = strings.Trim(strings.TrimPrefix(part, "rel="), `"`)
			case strings.HasPrefix(part, "results="):
				results = strings.Trim(strings.TrimPrefix(part, "results="), `"`)
			case strings.HasPrefix(part, "cursor="):
				cursor = strings.Trim(strings.TrimPrefix(part, "cursor="), `"`)
			}
		}
		if rel == "next" {
			return cursor, results == "true"
		}
	}
	return "", false
}
