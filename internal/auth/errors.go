package auth

import (
	"errors"
	"fmt"

	"github.com/julianstephens/thirtyday/internal/keyring"
)

var (
	ErrInvalidURL      = errors.New("invalid URL")
	ErrInvalidResponse = errors.New("invalid response from server")
	ErrUnauthorized    = errors.New("unauthorized")
	// ErrTokenNotFound is returned by a TokenStore holding no token.
	ErrTokenNotFound = keyring.ErrNotFound
	// ErrKeyring wraps failures to save or delete the stored token.
	ErrKeyring = errors.New("failed to access token storage")
)

// ServerError is a non-2xx, non-401 response from the auth service.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// UserMessage returns the message reported by the server.
func (e *ServerError) UserMessage() string {
	return e.Message
}
