package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"seized-page/internal/domain"
)

// DBTX is satisfied by *pgx.Conn, pgx.Tx and *pgxpool.Pool
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VisitRepository defines the interface for criminal_ips operations
type VisitRepository interface {
	// EnsureSchema creates the criminal_ips table if it does not exist
	EnsureSchema(ctx context.Context) error

	// Insert stores one visit stamped with the server's current time
	Insert(ctx context.Context, ipAddress string) (*domain.VisitRecord, error)

	// Count returns the number of stored visits
	Count(ctx context.Context) (int64, error)
}
