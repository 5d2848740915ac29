// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/rentkeeper/internal/models"
	"github.com/mmynk/rentkeeper/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateHouse persists a new house to the database.
func (s *SQLiteStore) CreateHouse(ctx context.Context, house *models.House) error {
	if house.CreatedAt == 0 {
		house.CreatedAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO houses (name, address, rent, created_at) VALUES (?, ?, ?, ?)",
		house.Name, house.Address, house.Rent, house.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert house: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read house id: %w", err)
	}
	house.ID = id

	return nil
}

// GetHouse retrieves a house by ID.
func (s *SQLiteStore) GetHouse(ctx context.Context, id int64) (*models.House, error) {
	house := &models.House{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, address, rent, created_at FROM houses WHERE id = ?",
		id,
	).Scan(&house.ID, &house.Name, &house.Address, &house.Rent, &house.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("house %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get house: %w", err)
	}

	return house, nil
}

// ListHouses retrieves all houses ordered by ID.
func (s *SQLiteStore) ListHouses(ctx context.Context) ([]*models.House, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, rent, created_at FROM houses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	defer rows.Close()

	var houses []*models.House
	for rows.Next() {
		house := &models.House{}
		if err := rows.Scan(&house.ID, &house.Name, &house.Address, &house.Rent, &house.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan house: %w", err)
		}
		houses = append(houses, house)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate houses: %w", err)
	}

	return houses, nil
}
