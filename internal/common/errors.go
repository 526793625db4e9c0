// Package common defines shared sentinel errors and small utility helpers
// used across Waypost components. Callers should use errors.Is to match
// the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Signup flow errors. ErrUserNotAllocated deliberately covers both
	// "unknown username" and "wrong secret" so that signup responses cannot
	// be used to probe which usernames hold an invitation.
	ErrUserNotAllocated = errors.New("user not allocated")

	// ErrHashingFailure signals that the password hashing primitive failed.
	// It is terminal for the current signup attempt and never retried.
	ErrHashingFailure = errors.New("password hashing failure")
)
