// Package models declares the persistent records of the signup domain.
package models

import "time"

// User is the durable account record.
type User struct {
	ID          string
	Username    string
	Email       string
	Description string
	Created     time.Time
}
