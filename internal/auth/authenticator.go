package auth

import (
	"context"

	"github.com/quicksplit/quicksplit/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, passkeys, OAuth, etc.) without changing the CLI layer.
type Authenticator interface {
	// Register creates a new user account with the given username,
	// email, and credential. The credential format depends on the
	// implementation. Returns the created user or an error.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the
	// user if successful.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
