package dto

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the liveness and readiness payloads.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// NewHealthResponse builds a HealthResponse, omitting checks when there are none.
func NewHealthResponse(status string, checks map[string]string) *HealthResponse {
	if len(checks) == 0 {
		checks = nil
	}

	return &HealthResponse{Status: status, Checks: checks}
}
