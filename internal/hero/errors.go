package hero

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNilRef is reported when Delete receives no hero reference.
var ErrNilRef = errors.New("nil hero reference")

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("Http failure response for %s: %s", e.URL, status)
}
