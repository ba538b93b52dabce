// Package health provides shared types for health probe responses.
package health

// RegistryStatus is one registry session's state as reported by the
// readiness probe.
type RegistryStatus struct {
	ID       string   `json:"id"`
	State    string   `json:"state"`
	ServerID string   `json:"server_id,omitempty"`
	Zones    []string `json:"zones,omitempty"`
}

// Response represents the API health response structure.
type Response struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Data      []RegistryStatus `json:"data,omitempty"`
	Error     string           `json:"error,omitempty"`
}
