package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is retained.
const maxErrorBody = 8 << 10

// Error is returned for every non-2xx backend answer. The API does not distinguish
// auth, validation and server failures in a structured way, so neither does the console.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func newError(method, path string, res *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return &Error{
		Method:     method,
		Path:       path,
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Body:       strings.TrimSpace(string(raw)),
	}
}

func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend %s %s: %s: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.Path, e.Status)
}

// Payload returns the raw response body as sent by the backend.
func (e *Error) Payload() string {
	return e.Body
}

// HasStatus reports whether err is a backend Error with the given status code.
func HasStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
