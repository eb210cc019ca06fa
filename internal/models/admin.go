package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an account allowed to change fares and bonus settings.
type Admin struct {
	// ID is the unique identifier (UUID format).
	ID string

	// Email is used to log in. Unique.
	Email string

	DisplayName string

	// PasswordHash is the bcrypt hash of the password. Never the password itself.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewAdmin creates an Admin with a generated ID and timestamps.
func NewAdmin(email, displayName, passwordHash string) *Admin {
	now := time.Now().Unix()
	return &Admin{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
