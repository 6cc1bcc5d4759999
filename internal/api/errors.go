package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches any 401 response through errors.Is.
	ErrUnauthorized = errors.New("not logged in")
	// ErrInvalidCredentials is returned by Login when the backend bounces
	// the form back.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no session")
)

// StatusError is a non-2xx response. Message is the JSON "error" field of
// the body when there was one.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// ServerMessage returns the backend's error text carried by err, if any.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// IsStatus reports whether err came from a completed HTTP exchange, as
// opposed to a transport or decode failure.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
