// File: server/errors.go
package server

import "errors"

var (
	// ErrTooManySessions is returned when MaxSessions games are already running.
	ErrTooManySessions = errors.New("server: too many sessions")
	// ErrSessionNotFound is returned for unknown or finished sessions.
	ErrSessionNotFound = errors.New("server: session not found")
	// ErrBadCommand is returned for client frames that cannot be understood.
	ErrBadCommand = errors.New("server: bad command")
)
