package models

import "time"

// Event represents a gateway activity entry, e.g. an incident created or
// resolved by the processor. Events feed the /events endpoint and the
// websocket activity stream.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`  // e.g. "incident.created", "incident.resolved"
	Level      string    `json:"level"` // "info", "warn", "error"
	Message    string    `json:"message"`
	IncidentID *string   `json:"incidentId,omitempty"` // Nullable for system-wide events
	CreatedAt  time.Time `json:"createdAt"`
}
