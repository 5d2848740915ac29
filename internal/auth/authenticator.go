package auth

import (
	"context"

	"github.com/mmynk/rentkeeper/internal/models"
)

// Authenticator defines the interface for owner authentication implementations.
// This abstraction allows swapping the credential scheme without changing
// the service layer code.
type Authenticator interface {
	// RegistrationOpen reports whether an owner can still be registered.
	// It is true only while no owner exists.
	RegistrationOpen(ctx context.Context) (bool, error)

	// Register creates the owner account with the given email and credential.
	// Returns ErrRegistrationClosed once an owner exists.
	Register(ctx context.Context, email, name, credential string) (*models.Owner, error)

	// Authenticate verifies the owner's credentials and returns the owner if successful.
	// Every failure is reported as ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.Owner, error)
}
