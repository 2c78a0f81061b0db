package models

// User represents a user account as served by the A.I.M.S backend. The
// frontend never mutates users directly; they are refreshed via GET /me.
type User struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	SlackID string `json:"slackID"`
	Admin   bool   `json:"admin"`
	Teams   []Team `json:"teams"`
}

// Team is a named group of users responsible for hosts and incidents.
type Team struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}
