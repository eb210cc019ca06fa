package auth

import (
	"context"

	"github.com/mmynk/farebonus/internal/models"
)

// Authenticator defines the interface for admin authentication.
// This abstraction allows swapping between different auth methods (password, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new admin account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.Admin, error)

	// Authenticate verifies the admin's credentials and returns the admin if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Admin, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
