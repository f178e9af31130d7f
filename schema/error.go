package schema

import "fmt"

// Error is the service error envelope: the HTTP status plus the "detail"
// field the backend sends with every non-2xx response.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

// NewError builds an Error for the given status and detail message.
func NewError(statusCode int, detail string) *Error {
	return &Error{StatusCode: statusCode, Detail: detail}
}
