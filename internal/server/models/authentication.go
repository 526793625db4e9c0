package models

import "time"

// Authentication holds the credential material for exactly one User.
// It is created in the same transaction as its User, so one never exists
// without the other.
type Authentication struct {
	UserID   string
	PassHash string
	Salt     string
	// Stale marks a hash that should be re-derived on next login,
	// e.g. after a cost-parameter bump.
	Stale   bool
	Updated time.Time
}
