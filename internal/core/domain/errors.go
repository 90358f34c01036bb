package domain

import (
	"fmt"
	"net/http"
)

// BackendError is a non-2xx answer from the REST backend. Detail carries the
// backend's own message and is shown to the user verbatim.
type BackendError struct {
	Status int
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend responded %d %s", e.Status, http.StatusText(e.Status))
}
