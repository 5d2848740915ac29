package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
)

// CreateAgreement persists a new agreement to the database.
func (s *SQLiteStore) CreateAgreement(ctx context.Context, agreement *models.Agreement) error {
	if agreement.CreatedAt == 0 {
		agreement.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO agreements (house_id, content, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		agreement.HouseID, agreement.Content, agreement.StartDate, agreement.EndDate, agreement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert agreement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read agreement id: %w", err)
	}
	agreement.ID = id

	return nil
}

// FirstAgreement returns the earliest agreement of a house, or nil.
func (s *SQLiteStore) FirstAgreement(ctx context.Context, houseID int64) (*models.Agreement, error) {
	agreement := &models.Agreement{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, house_id, content, start_date, end_date, created_at
		 FROM agreements WHERE house_id = ? ORDER BY id LIMIT 1`,
		houseID,
	).Scan(&agreement.ID, &agreement.HouseID, &agreement.Content,
		&agreement.StartDate, &agreement.EndDate, &agreement.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	return agreement, nil
}
