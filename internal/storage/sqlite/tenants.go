package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
)

// CreateTenant persists a new tenant to the database.
func (s *SQLiteStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.CreatedAt == 0 {
		tenant.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tenants (house_id, name, phone, email, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		tenant.HouseID, tenant.Name, tenant.Phone, tenant.Email, tenant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tenant id: %w", err)
	}
	tenant.ID = id

	return nil
}

// FirstTenant returns the earliest recorded tenant of a house, or nil.
func (s *SQLiteStore) FirstTenant(ctx context.Context, houseID int64) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, house_id, name, phone, email, created_at
		 FROM tenants WHERE house_id = ? ORDER BY id LIMIT 1`,
		houseID,
	).Scan(&tenant.ID, &tenant.HouseID, &tenant.Name, &tenant.Phone, &tenant.Email, &tenant.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// ListTenants returns all tenants of a house ordered by ID.
func (s *SQLiteStore) ListTenants(ctx context.Context, houseID int64) ([]*models.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, house_id, name, phone, email, created_at
		 FROM tenants WHERE house_id = ? ORDER BY id`,
		houseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.HouseID, &tenant.Name, &tenant.Phone, &tenant.Email, &tenant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}

	return tenants, nil
}
