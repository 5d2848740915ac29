// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/rentkeeper/internal/models"
)

var (
	// ErrNotFound is wrapped by lookups of records that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrOwnerExists is returned by CreateFirstOwner once an owner is stored.
	ErrOwnerExists = errors.New("owner already exists")
)

// OwnerStore holds the single owner account.
type OwnerStore interface {
	// CountOwners returns the number of stored owners.
	CountOwners(ctx context.Context) (int, error)

	// CreateFirstOwner persists owner only if no owner exists yet, and
	// populates owner.ID. The check and the insert are one statement, so
	// concurrent registrations cannot both succeed.
	CreateFirstOwner(ctx context.Context, owner *models.Owner) error

	// GetOwnerByEmail returns nil and no error when no owner matches.
	GetOwnerByEmail(ctx context.Context, email string) (*models.Owner, error)

	// GetOwnerByID returns nil and no error when no owner matches.
	GetOwnerByID(ctx context.Context, id int64) (*models.Owner, error)
}

// Store defines the interface for rental record storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	OwnerStore

	// CreateHouse persists a new house and populates house.ID.
	CreateHouse(ctx context.Context, house *models.House) error

	// GetHouse retrieves a house by ID. The error wraps ErrNotFound when
	// the house does not exist.
	GetHouse(ctx context.Context, id int64) (*models.House, error)

	// ListHouses returns every house ordered by ID.
	ListHouses(ctx context.Context) ([]*models.House, error)

	// CreateTenant persists a new tenant and populates tenant.ID.
	CreateTenant(ctx context.Context, tenant *models.Tenant) error

	// FirstTenant returns the earliest tenant of a house, or nil.
	FirstTenant(ctx context.Context, houseID int64) (*models.Tenant, error)

	// ListTenants returns the tenants of a house ordered by ID.
	ListTenants(ctx context.Context, houseID int64) ([]*models.Tenant, error)

	// CreateBill persists a new bill and populates bill.ID.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListBills returns the bills of a house, newest date first.
	ListBills(ctx context.Context, houseID int64) ([]*models.Bill, error)

	// CreateAgreement persists a new agreement and populates agreement.ID.
	CreateAgreement(ctx context.Context, agreement *models.Agreement) error

	// FirstAgreement returns the earliest agreement of a house, or nil.
	FirstAgreement(ctx context.Context, houseID int64) (*models.Agreement, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
