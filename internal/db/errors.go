package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrAnalysisNotFound is returned when no analysis has the requested ID.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
