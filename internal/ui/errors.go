package ui

import "fmt"

// ErrorKind classifies user-visible failures.
type ErrorKind string

const (
	LookupFailed   ErrorKind = "lookup_failed"
	LocationFailed ErrorKind = "location_failed"
	FetchFailed    ErrorKind = "fetch_failed"
)

// AppError is the single user-visible error slot.
type AppError struct {
	Kind    ErrorKind
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("Error: %d, Message: %s", e.Code, e.Message)
}

// NewLookupFailed is raised when the suggestion provider fails.
func NewLookupFailed() *AppError {
	return &AppError{Kind: LookupFailed, Code: 404, Message: "Could not find city"}
}

// NewLocationFailed is raised when geolocation is denied or unavailable.
func NewLocationFailed(reason string) *AppError {
	return &AppError{Kind: LocationFailed, Code: 500, Message: "Couldn't access your location \n Reason: " + reason}
}

// NewFetchFailed is raised when the weather request fails.
func NewFetchFailed() *AppError {
	return &AppError{Kind: FetchFailed, Code: 500, Message: "Failed to retrieve weather"}
}
