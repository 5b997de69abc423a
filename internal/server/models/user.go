// Package models defines the persistent server-side entities.
package models

import "time"

// User is an identity record. PasswordHash never leaves the service
// boundary: it is excluded from JSON and cleared before a User is
// returned to a caller.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
