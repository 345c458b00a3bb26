package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no state exists for a session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionTerminated is returned when a caller submits an answer
	// against a session that already produced its final report.
	ErrSessionTerminated = errors.New("session already terminated")

	// ErrSessionExists is returned when creating a state under an id that
	// is already taken.
	ErrSessionExists = errors.New("session already exists")
)
