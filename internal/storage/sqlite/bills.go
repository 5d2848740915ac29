package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
)

// CreateBill persists a new bill to the database.
// Dates are stored as Unix seconds exactly as given; callers choose the date.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (house_id, type, amount, note, date) VALUES (?, ?, ?, ?, ?)",
		bill.HouseID, bill.Type, bill.Amount, bill.Note, bill.Date.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read bill id: %w", err)
	}
	bill.ID = id

	return nil
}

// ListBills returns the bills of a house, newest date first. Bills sharing a
// date are ordered by most recently created.
func (s *SQLiteStore) ListBills(ctx context.Context, houseID int64) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, house_id, type, amount, note, date
		 FROM bills WHERE house_id = ? ORDER BY date DESC, id DESC`,
		houseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var date int64
		if err := rows.Scan(&bill.ID, &bill.HouseID, &bill.Type, &bill.Amount, &bill.Note, &date); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.Date = time.Unix(date, 0).UTC()
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}
