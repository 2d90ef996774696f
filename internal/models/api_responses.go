package models

import "time"

// Health status values
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Version   string       `json:"version"`
	Checks    HealthChecks `json:"checks"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Retriever RetrieverCheck `json:"retriever"`
	Database  DatabaseCheck  `json:"database"`
}

// RetrieverCheck describes the document source.
type RetrieverCheck struct {
	Configured bool   `json:"configured"`
	BaseURL    string `json:"base_url,omitempty"`
}

// DatabaseCheck describes the history database.
type DatabaseCheck struct {
	Enabled bool   `json:"enabled"`
	Up      bool   `json:"up"`
	Error   string `json:"error,omitempty"`
}

// AnalysisListResponse is the data of GET /api/analyses.
type AnalysisListResponse struct {
	Analyses []Analysis `json:"analyses"`
	Count    int        `json:"count"`
}
