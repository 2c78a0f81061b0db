package models

import "time"

// Incident is a tracked outage or error condition affecting one or more
// hosts. Resolution state is carried by ResolvedAt/ResolvedBy; updates set
// an explicit resolved flag, so incidents can be reopened.
type Incident struct {
	UUID            string            `json:"uuid"`
	Summary         string            `json:"summary"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"createdAt"`
	ResolvedAt      *time.Time        `json:"resolvedAt"`
	ResolvedBy      *User             `json:"resolvedBy"`
	ResolutionTeams []Team            `json:"resolutionTeams"`
	HostsAffected   []HostMachine     `json:"hostsAffected"`
	Comments        []IncidentComment `json:"comments"`
}

// Resolved reports whether the incident is currently resolved.
func (i Incident) Resolved() bool {
	return i.ResolvedAt != nil
}

// LastActivity returns the time of the most recent comment, or CreatedAt
// when there are none. Comments arrive newest first.
func (i Incident) LastActivity() time.Time {
	if len(i.Comments) > 0 {
		return i.Comments[0].CommentedAt
	}
	return i.CreatedAt
}

// IncidentComment is a remark left on an incident. Comment bodies are
// between 1 and 200 characters.
type IncidentComment struct {
	UUID        string    `json:"uuid"`
	Comment     string    `json:"comment"`
	CommentedAt time.Time `json:"commentedAt"`
	CommentedBy User      `json:"commentedBy"`
}
