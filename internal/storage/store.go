// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/farebonus/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SettingsStore persists fares and bonus policy parameters.
// Values are stored as exact decimal strings; a missing value falls back to
// its documented default.
type SettingsStore interface {
	// GetSettings returns the persisted settings, filling gaps with defaults.
	// It fails if a persisted value does not parse as an exact decimal.
	GetSettings(ctx context.Context) (*models.Settings, error)

	// SaveSettings persists every value in settings atomically.
	SaveSettings(ctx context.Context, settings *models.Settings) error

	// RestoreDefaults clears all preferences and writes the defaults.
	RestoreDefaults(ctx context.Context) error

	// GetSelectedFare returns the fare type chosen last, or the default.
	GetSelectedFare(ctx context.Context) (models.FareType, error)

	// SetSelectedFare remembers the fare type chosen last.
	SetSelectedFare(ctx context.Context, fare models.FareType) error

	// GetVersion returns the app version that last ran, or "" if none did.
	GetVersion(ctx context.Context) (string, error)

	// SetVersion records the app version that is running.
	SetVersion(ctx context.Context, version string) error
}

// AdminStore persists admin accounts.
type AdminStore interface {
	// CreateAdmin persists a new admin. Fails if the email is taken.
	CreateAdmin(ctx context.Context, admin *models.Admin) error

	// GetAdminByEmail returns ErrNotFound if no admin has that email.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)

	// GetAdminByID returns ErrNotFound if no admin has that ID.
	GetAdminByID(ctx context.Context, id string) (*models.Admin, error)
}

// Store combines every storage capability behind one backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	SettingsStore
	AdminStore

	// Close releases any resources held by the store.
	Close() error
}
