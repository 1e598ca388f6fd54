package models

import "errors"

// Sentinel errors matched with errors.Is at the handler boundary.
var (
	// ErrInvalidSection is returned for a section name outside the registry.
	ErrInvalidSection = errors.New("invalid section")

	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("item not found")

	// ErrStoreUnavailable is returned when the backing store credentials or
	// spreadsheet configuration are absent. Read paths degrade to empty
	// results; write paths propagate it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrRateLimited is returned when a client exceeds the submission quota.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError describes a missing or malformed request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
