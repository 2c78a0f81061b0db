package models

// HostMachine is a monitored machine owned by a team. At least one of IP4
// and IP6 is present; the backend enforces this and the client mirrors the
// check before submitting.
type HostMachine struct {
	UUID     string  `json:"uuid"`
	Hostname string  `json:"hostname"`
	OS       string  `json:"os"`
	IP4      *string `json:"ip4"`
	IP6      *string `json:"ip6"`
	Team     Team    `json:"team"`
}
