package backend

import "fmt"

// BackendError is returned when the backend answers with a non-2xx status.
type BackendError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s: http %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("backend %s: http %d: %s", e.Op, e.StatusCode, e.Body)
}
