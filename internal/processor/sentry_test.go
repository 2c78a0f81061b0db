package processor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/models"
)

func sentryProvider(apiURL string) models.Provider {
	return models.Provider{
		Name: "sentry",
		Type: models.ProviderTypeLog,
		Fields: []models.ProviderField{
			{Key: "orgSlug", Value: "aims", Type: models.FieldTypeString},
			{Key: "projSlug", Value: "console", Type: models.FieldTypeString},
			{Key: "token", Value: "s3cr3t", Type: models.FieldTypeString},
			{Key: "apiURL", Value: apiURL, Type: models.FieldTypeString},
		},
	}
}

func TestSentrySourcePagesThroughUnhandledEvents(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, "/projects/aims/console/events/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("cursor") == "" {
			w.Header().Set("Link",
				`<u>; rel="previous"; results="false"; cursor="0:0:0", <u>; rel="next"; results="true"; cursor="0:100:0"`)
			fmt.Fprint(w, `[
				{"id":"ev-1","title":"TypeError: x is undefined","culprit":"GET /hosts",
				 "tags":[{"key":"handled","value":"no"},{"key":"server_name","value":"web-1"}],
				 "errors":[{"data":{"url":"app:///src/hosts.ts"}}]},
				{"id":"ev-2","title":"Handled warning","culprit":"GET /teams",
				 "tags":[{"key":"handled","value":"yes"}]}
			]`)
			return
		}

		assert.Equal(t, "0:100:0", r.URL.Query().Get("cursor"))
		w.Header().Set("Link", `<u>; rel="next"; results="false"; cursor="0:200:0"`)
		fmt.Fprint(w, `[
			{"id":"ev-3","title":"net::ERR_CONNECTION_REFUSED","culprit":"GET /api",
			 "tags":[{"key":"handled","value":"no"},{"key":"server_name","value":"web-2"}],
			 "errors":[{"data":{"url":"app:///node_modules/.pnpm/axios@1.6.2/node_modules/axios/index.js"}}]}
		]`)
	}))
	defer server.Close()

	source := NewSentrySource()
	alerts, err := source.UnresolvedAlerts(context.Background(), sentryProvider(server.URL))
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cr3t", authHeader)

	require.Len(t, alerts, 2, "handled events are filtered out")

	first := alerts[0]
	assert.Equal(t, "ev-1", first.ID)
	assert.Equal(t, []string{"web-1"}, first.Hostnames)
	assert.False(t, first.FromDependency)
	assert.Equal(t, "Endpoint GET /hosts", first.RootCause)
	assert.Len(t, first.Hash, 64)

	second := alerts[1]
	assert.Equal(t, "ev-3", second.ID)
	assert.True(t, second.FromDependency)
	assert.Equal(t, "Dependency issue with axios@1.6.2", second.RootCause)
	assert.NotEqual(t, first.Hash, second.Hash)
}

func TestSentrySourceRequiresProviderFields(t *testing.T) {
	source := NewSentrySource()

	provider := sentryProvider("http://localhost")
	provider.Fields = provider.Fields[1:] // drop orgSlug

	_, err := source.UnresolvedAlerts(context.Background(), provider)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orgSlug")
}

func TestSentrySourceFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := NewSentrySource()
	_, err := source.UnresolvedAlerts(context.Background(), sentryProvider(server.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestToAlertHashIsStable(t *testing.T) {
	event := sentryEvent{
		ID:      "ev-1",
		Title:   "TypeError",
		Culprit: "GET /hosts",
		Tags:    []sentryTag{{Key: "server_name", Value: "web-1"}},
	}

	a := event.toAlert()
	b := event.toAlert()
	assert.Equal(t, a.Hash, b.Hash)

	event.Culprit = "GET /teams"
	assert.NotEqual(t, a.Hash, event.toAlert().Hash)
}

func TestRootCauseGuesses(t *testing.T) {
	tests := []struct {
		name           string
		file           string
		fromDependency bool
		want           string
	}{
		{"pnpm path", "app:///node_modules/.pnpm/lodash@4.17.21/index.js", true, "Dependency issue with lodash@4.17.21"},
		{"npm path", "app:///node_modules/express/lib/router.js", true, "Dependency issue with express@latest"},
		{"unrecognized dependency", "app:///vendor/blob", true, "Unknown dependency issue"},
		{"own code", "app:///src/hosts.ts", false, "Endpoint GET /hosts"},
		{"no file at all", "", false, "Unknown issue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := sentryEvent{ID: "ev-1", Culprit: "GET /hosts"}
			assert.Equal(t, tt.want, rootCause(e, tt.file, tt.fromDependency))
		})
	}
}

func TestNextCursor(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cursor string
		more   bool
	}{
		{
			"more results",
			`<u>; rel="previous"; results="false"; cursor="0:0:0", <u>; rel="next"; results="true"; cursor="0:100:0"`,
			"0:100:0", true,
		},
		{
			"last page",
			`<u>; rel="next"; results="false"; cursor="0:200:0"`,
			"0:200:0", false,
		},
		{"empty header", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, more := nextCursor(tt.header)
			assert.Equal(t, tt.more, more)
			if tt.more {
				assert.Equal(t, tt.cursor, cursor)
			}
		})
	}
}
