package lesswrong

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned by authenticated calls when no login token is stored
var ErrNoToken = errors.New("no auth token configured")

// ErrNotFound matches every *NotFoundError under errors.Is
var ErrNotFound = errors.New("not found")

// HTTPError is returned when the server responds with a non-2xx status
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string // first part of the response body
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return "server said: " + e.Status
	}
	return fmt.Sprintf("server said: %s: %s", e.Status, e.Body)
}

// NotFoundError is returned when a lookup by slug or ID has no match
type NotFoundError struct {
	Kind string // "user", "post", or "tag"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) work
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
