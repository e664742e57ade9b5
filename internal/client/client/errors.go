package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrLimitReached = errors.New("daily limit reached")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx answer that carries the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
