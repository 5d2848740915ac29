package models

import "time"

// Owner is the single administrative account of the system.
//
// At most one Owner exists. Registration closes for good once the first
// Owner row is stored.
type Owner struct {
	// ID is the autoincrement identifier assigned by the store.
	ID int64

	// Email is the login identity, stored trimmed and lowercased (unique).
	Email string

	// PasswordHash is the bcrypt hash of the password. The raw password is
	// never stored.
	PasswordHash string

	// Name is an optional display name.
	Name string

	// CreatedAt is the Unix timestamp when the owner was registered.
	CreatedAt int64
}

// NewOwner creates an Owner ready to be persisted.
func NewOwner(email, name, passwordHash string) *Owner {
	return &Owner{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// DisplayName returns the name, or the email when no name was given.
func (o *Owner) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Email
}
