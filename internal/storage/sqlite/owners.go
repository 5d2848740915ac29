package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
	"github.com/mmynk/rentkeeper/internal/storage"
)

const ownerColumns = "id, email, password_hash, name, created_at"

// CountOwners returns how many owner rows exist.
func (s *SQLiteStore) CountOwners(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM owners").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return n, nil
}

// CreateFirstOwner inserts the owner only while the owners table is empty.
func (s *SQLiteStore) CreateFirstOwner(ctx context.Context, owner *models.Owner) error {
	if owner.CreatedAt == 0 {
		owner.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO owners (email, password_hash, name, created_at)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM owners)
	`

	res, err := s.db.ExecContext(ctx, query,
		owner.Email,
		owner.PasswordHash,
		owner.Name,
		owner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	if n == 0 {
		return storage.ErrOwnerExists
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read owner id: %w", err)
	}
	owner.ID = id

	return nil
}

// GetOwnerByEmail retrieves an owner by email address.
func (s *SQLiteStore) GetOwnerByEmail(ctx context.Context, email string) (*models.Owner, error) {
	query := "SELECT " + ownerColumns + " FROM owners WHERE email = ?"

	owner, err := scanOwner(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get owner by email: %w", err)
	}
	return owner, nil
}

// GetOwnerByID retrieves an owner by ID.
func (s *SQLiteStore) GetOwnerByID(ctx context.Context, id int64) (*models.Owner, error) {
	query := "SELECT " + ownerColumns + " FROM owners WHERE id = ?"

	owner, err := scanOwner(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get owner by ID: %w", err)
	}
	return owner, nil
}

func scanOwner(row *sql.Row) (*models.Owner, error) {
	owner := &models.Owner{}
	err := row.Scan(
		&owner.ID,
		&owner.Email,
		&owner.PasswordHash,
		&owner.Name,
		&owner.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Owner not found
	}
	if err != nil {
		return nil, err
	}
	return owner, nil
}
