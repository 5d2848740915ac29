package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/rentkeeper/internal/models"
	"github.com/mmynk/rentkeeper/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password required")
	ErrRegistrationClosed = errors.New("registration disabled: owner already created")
)

// OwnerStorage defines the interface for owner persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type OwnerStorage interface {
	CountOwners(ctx context.Context) (int, error)
	CreateFirstOwner(ctx context.Context, owner *models.Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*models.Owner, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage OwnerStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
// A cost of zero uses bcrypt.DefaultCost.
func NewPasswordAuthenticator(storage OwnerStorage, cost int) *PasswordAuthenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: storage,
		cost:    cost,
	}
}

// NormalizeEmail trims and lowercases an email so lookups ignore casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// prehash digests a password to 44 bytes so bcrypt's 72 byte input limit
// never rejects or truncates it.
func prehash(credential string) []byte {
	sum := sha256.Sum256([]byte(credential))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// RegistrationOpen reports whether no owner exists yet.
func (a *PasswordAuthenticator) RegistrationOpen(ctx context.Context) (bool, error) {
	n, err := a.storage.CountOwners(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Register creates the owner account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, name, credential string) (*models.Owner, error) {
	open, err := a.RegistrationOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrRegistrationClosed
	}

	email = NormalizeEmail(email)
	if email == "" || credential == "" {
		return nil, ErrMissingCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(prehash(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	owner := models.NewOwner(email, strings.TrimSpace(name), string(hashedPassword))

	// The store re-checks emptiness atomically; a concurrent registration
	// that won the race surfaces here.
	if err := a.storage.CreateFirstOwner(ctx, owner); err != nil {
		if errors.Is(err, storage.ErrOwnerExists) {
			return nil, ErrRegistrationClosed
		}
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	return owner, nil
}

// Authenticate verifies the email and password, returning the owner if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Owner, error) {
	owner, err := a.storage.GetOwnerByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	if owner == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), prehash(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return owner, nil
}
