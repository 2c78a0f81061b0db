package models

// Request body schemas for the mutating backend operations. Validation
// tags mirror the backend's rules; the backend remains authoritative.

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HostRequest is the body of POST /hosts and PUT /hosts/{id}. At least one
// of IP4/IP6 must be set; that rule lives in validate.Host since it spans
// two fields.
type HostRequest struct {
	Hostname string `json:"hostname" validate:"required"`
	OS       string `json:"os" validate:"required"`
	IP4      string `json:"ip4" validate:"omitempty,ip4_addr"`
	IP6      string `json:"ip6" validate:"omitempty,ip6_addr"`
	TeamID   string `json:"teamID" validate:"required,uuid"`
}

// IncidentCreateRequest is the body of POST /incidents. Hash deduplicates
// incidents raised automatically from the same stack trace.
type IncidentCreateRequest struct {
	Summary         string   `json:"summary" validate:"required,max=100"`
	Description     string   `json:"description" validate:"max=500"`
	HostsAffected   []string `json:"hostsAffected" validate:"required,min=1,dive,uuid"`
	ResolutionTeams []string `json:"resolutionTeams" validate:"dive,uuid"`
	Hash            string   `json:"hash,omitempty"`
}

// IncidentUpdateRequest is the body of PUT /incidents/{id}. Resolved is
// explicit in both directions: setting it false reopens the incident.
type IncidentUpdateRequest struct {
	Summary         string   `json:"summary" validate:"required,max=100"`
	Description     string   `json:"description" validate:"max=500"`
	HostsAffected   []string `json:"hostsAffected" validate:"dive,uuid"`
	ResolutionTeams []string `json:"resolutionTeams" validate:"dive,uuid"`
	Resolved        bool     `json:"resolved"`
}

// CommentRequest is the body of POST /incidents/{id}/comments.
type CommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=200"`
}

// ProviderCreateRequest is the body of POST /providers.
type ProviderCreateRequest struct {
	Name string `json:"name" validate:"required"`
}
