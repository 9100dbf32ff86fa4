package repository

import (
	"context"
	"fmt"

	"seized-page/internal/domain"
)

const (
	// CreateVisitsTableSQL is a no-op when the table already exists
	CreateVisitsTableSQL = `
		CREATE TABLE IF NOT EXISTS criminal_ips (
			id SERIAL PRIMARY KEY,
			ip_address VARCHAR(45) NOT NULL,
			visit_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	// DropVisitsTableSQL is used only by the migrate command
	DropVisitsTableSQL = `DROP TABLE IF EXISTS criminal_ips`

	insertVisitSQL = `
		INSERT INTO criminal_ips (ip_address, visit_time)
		VALUES ($1, NOW())
		RETURNING id, visit_time
	`

	countVisitsSQL = `SELECT COUNT(*) FROM criminal_ips`
)

// visitRepository handles criminal_ips rows over a single connection
type visitRepository struct {
	db DBTX
}

// NewVisitRepository creates a new visit repository bound to db
func NewVisitRepository(db DBTX) VisitRepository {
	return &visitRepository{
		db: db,
	}
}

// EnsureSchema creates the criminal_ips table if it does not exist
func (r *visitRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CreateVisitsTableSQL); err != nil {
		return fmt.Errorf("failed to ensure criminal_ips table: %w", err)
	}
	return nil
}

// Insert stores one visit; the address is always a bound parameter
func (r *visitRepository) Insert(ctx context.Context, ipAddress string) (*domain.VisitRecord, error) {
	record := &domain.VisitRecord{IPAddress: ipAddress}

	err := r.db.QueryRow(ctx, insertVisitSQL, ipAddress).Scan(&record.ID, &record.VisitTime)
	if err != nil {
		return nil, fmt.Errorf("failed to insert visit: %w", err)
	}

	return record, nil
}

// Count returns the number of stored visits
func (r *visitRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countVisitsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}
