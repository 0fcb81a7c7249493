// internal/inventory/errors.go
package inventory

import (
	"errors"
	"fmt"
)

// ErrNotFound distinguishes "doesn't exist" from "exists but busy". Callers
// match it with errors.Is.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// ValidationError rejects a request before any remote call; Field names the
// violated field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StateError rejects an operation that is illegal in the entity's current
// state, naming the state and the attempted action.
type StateError struct {
	Current string
	Action  string
	Message string
}

func (e *StateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cannot %s in status %q", e.Action, e.Current)
}

// AvailabilityError rejects a booking whose target is not free for the
// requested window. For kits, UnavailableAssets lists the failing members.
type AvailabilityError struct {
	Message           string
	UnavailableAssets []string
}

func (e *AvailabilityError) Error() string {
	return e.Message
}
