// Package usecase implements token login, logout and session validation.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when the email/password pair does not match a user.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")
)
