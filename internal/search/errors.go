package search

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrUnknownPlatform = errors.New("unknown platform")
)

// ValidationError is a malformed query parameter
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ShapingError is a provider record that cannot be turned into an Event
type ShapingError struct {
	EventID string
	Reason  string
}

func (e *ShapingError) Error() string {
	return fmt.Sprintf("cannot shape event %s: %s", e.EventID, e.Reason)
}
