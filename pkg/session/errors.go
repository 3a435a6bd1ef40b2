package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.not_found")
	ErrSessionExpired  = errors.New("session.expired")
	ErrInvalidToken    = errors.New("session.invalid_token")
	ErrNoTransport     = errors.New("session.no_transport")
)
