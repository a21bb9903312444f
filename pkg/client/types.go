package client

// Status is the daemon's view of the tracked sidecar.
type Status struct {
	Alive bool `json:"alive"`
	PID   *int `json:"pid"`
}

// MessageResponse is the body of successful start/stop calls.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
