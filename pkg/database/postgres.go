package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"seized-page/internal/config"
)

// Connector opens one connection per call; there is no pool
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// Conn is the subset of *pgx.Conn used by the visit store.
// *pgx.Conn satisfies it directly.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// PostgresConnector dials PostgreSQL from an explicit configuration
type PostgresConnector struct {
	cfg config.DatabaseConfig
}

// NewPostgresConnector validates cfg and returns a connector for it
func NewPostgresConnector(cfg config.DatabaseConfig) (*PostgresConnector, error) {
	if _, err := cfg.ConnConfig(); err != nil {
		return nil, err
	}
	return &PostgresConnector{cfg: cfg}, nil
}

// Connect opens a new connection. Failures are returned immediately, never retried.
func (c *PostgresConnector) Connect(ctx context.Context) (Conn, error) {
	connConfig, err := c.cfg.ConnConfig()
	if err != nil {
		return nil, err
	}

	// Disable prepared statement cache, each connection runs two statements
	connConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return conn, nil
}

// Health opens a throwaway connection and pings it
func (c *PostgresConnector) Health(ctx context.Context) error {
	conn, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	return conn.Ping(ctx)
}

var _ Conn = (*pgx.Conn)(nil)
