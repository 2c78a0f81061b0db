package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aims-ops/aims-console/internal/models"
	"github.com/aims-ops/aims-console/internal/websocket"
)

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	Record(eventType, level, message string, incidentID *string) error
	Recent(limit int) ([]models.Event, error)
}

// EventService persists gateway activity events and pushes them to
// connected dashboards through the hub.
type EventService struct {
	db  *sql.DB
	hub *websocket.Hub
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub *websocket.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// Record logs a new event and broadcasts it.
func (s *EventService) Record(eventType, level, message string, incidentID *string) error {
	event := models.Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Level:      level,
		Message:    message,
		IncidentID: incidentID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, incident_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.IncidentID); err != nil {
		return err
	}

	if s.hub != nil {
		payload, err := json.Marshal(websocket.Message{Action: "event", Payload: event})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to marshal event for broadcast")
			return nil
		}
		s.hub.Broadcast <- payload
		if event.IncidentID != nil {
			s.hub.BroadcastTo(*event.IncidentID, payload)
		}
	}
	return nil
}

// Recent retrieves the most recent events, newest first.
func (s *EventService) Recent(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, incident_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.IncidentID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
