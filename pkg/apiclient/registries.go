package apiclient

// RegistryStatus is the observable state of one proxied registry.
type RegistryStatus struct {
	ID       string   `json:"id"`
	State    string   `json:"state"`
	ServerID string   `json:"server_id,omitempty"`
	Zones    []string `json:"zones,omitempty"`
}

// Registries returns the status of every configured registry.
func (c *Client) Registries() ([]RegistryStatus, error) {
	var out []RegistryStatus
	if err := c.get("/api/v1/registries", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Registry returns one registry's status.
func (c *Client) Registry(id string) (*RegistryStatus, error) {
	var out RegistryStatus
	if err := c.get("/api/v1/registries/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready reports whether the proxy can take traffic.
func (c *Client) Ready() (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get("/health/ready", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
