package models

// Error kinds used in the error envelope.
const (
	KindValidation          = "VALIDATION_ERROR"
	KindUpstream            = "GOOGLE_MAPS_ERROR"
	KindUnauthorized        = "UNAUTHORIZED"
	KindForbidden           = "FORBIDDEN"
	KindRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	KindNotFound            = "NOT_FOUND"
	KindServiceUnavailable  = "SERVICE_UNAVAILABLE"
	KindInternalServerError = "INTERNAL_SERVER_ERROR"
)

// ErrorInfo is the error half of the response envelope.
type ErrorInfo struct {
	Error      string       `json:"error"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	RetryAfter int          `json:"retryAfter,omitempty"`
}

// ApiResponse is the envelope every endpoint responds with.
// Exactly one of Data and Error is set.
type ApiResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// HealthStatus is the payload of the health check.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
