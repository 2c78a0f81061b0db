package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-ops/aims-console/internal/api/handlers"
	"github.com/aims-ops/aims-console/internal/models"
)

type fakeEventService struct {
	events    []models.Event
	err       error
	lastLimit int
}

func (f *fakeEventService) Record(eventType, level, message string, incidentID *string) error {
	return nil
}

func (f *fakeEventService) Recent(limit int) ([]models.Event, error) {
	f.lastLimit = limit
	return f.events, f.err
}

func TestRecentReturnsEvents(t *testing.T) {
	service := &fakeEventService{events: []models.Event{
		{ID: "e-1", Type: "incident.created", Level: "warn", Message: "Payments API down"},
	}}
	handler := handlers.NewEventHandler(service)

	rec := httptest.NewRecorder()
	handler.Recent(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, service.lastLimit, "the default limit is 50")

	var events []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "incident.created", events[0].Type)
}

func TestRecentHonorsLimitParam(t *testing.T) {
	service := &fakeEventService{}
	handler := handlers.NewEventHandler(service)

	rec := httptest.NewRecorder()
	handler.Recent(rec, httptest.NewRequest(http.MethodGet, "/events?limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, service.lastLimit)
}

func TestRecentRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"0", "-1", "501", "soon"} {
		t.Run(limit, func(t *testing.T) {
			handler := handlers.NewEventHandler(&fakeEventService{})

			rec := httptest.NewRecorder()
			handler.Recent(rec, httptest.NewRequest(http.MethodGet, "/events?limit="+limit, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRecentReturnsEmptyArrayNotNull(t *testing.T) {
	handler := handlers.NewEventHandler(&fakeEventService{})

	rec := httptest.NewRecorder()
	handler.Recent(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestRecentReportsServiceFailure(t *testing.T) {
	handler := handlers.NewEventHandler(&fakeEventService{err: errors.New("db closed")})

	rec := httptest.NewRecorder()
	handler.Recent(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
