package upstream

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned by GetEvent when the provider has no such event
var ErrEventNotFound = errors.New("event not found")

// UpstreamError reports a failed call to the events provider.
// StatusCode is 0 when no HTTP response was received.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
