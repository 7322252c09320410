package models

import "time"

// PullResponse carries the stored payload of the user. Data and LastSync are
// JSON null when the user has never pushed anything.
type PullResponse struct {
	Message  string     `json:"message,omitempty"`
	Data     Payload    `json:"data"`
	LastSync *time.Time `json:"lastSync"`
}

// PushResponse is returned after an accepted or forced push. LastSync is the
// server-assigned instant of the write.
type PushResponse struct {
	Message  string    `json:"message,omitempty"`
	LastSync time.Time `json:"lastSync"`
}

// ConflictResponse is returned with 409 when the cloud copy is newer than the
// pushing device's copy.
type ConflictResponse struct {
	Error          string    `json:"error"`
	Conflict       bool      `json:"conflict"`
	CloudData      Payload   `json:"cloudData"`
	CloudTimestamp time.Time `json:"cloudTimestamp"`
}

// StatusResponse is the cheap reachability/freshness probe.
type StatusResponse struct {
	Configured bool       `json:"configured"`
	LastSync   *time.Time `json:"lastSync"`
	User       string     `json:"user"`
}

// ErrorResponse is the generic JSON error body. Configured is only set to
// false when the storage backend is not configured.
type ErrorResponse struct {
	Error      string `json:"error"`
	Configured *bool  `json:"configured,omitempty"`
}

// HealthResponse is returned by the unauthenticated liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
