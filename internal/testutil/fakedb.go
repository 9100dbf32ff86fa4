// Package testutil provides an in-memory stand-in for the criminal_ips store.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"seized-page/internal/domain"
	"seized-page/pkg/database"
)

// FakeStore emulates criminal_ips behind the database.Connector interface.
// Set the *Err fields to make the matching step fail.
type FakeStore struct {
	mu          sync.Mutex
	tableExists bool
	rows        []domain.VisitRecord
	nextID      int64

	ConnectErr error
	SchemaErr  error
	InsertErr  error

	Connects    int
	Closes      int
	SchemaCalls int
}

// NewFakeStore returns an empty store without the table
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Connect implements database.Connector
func (s *FakeStore) Connect(ctx context.Context) (database.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Connects++
	if s.ConnectErr != nil {
		return nil, s.ConnectErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &fakeConn{store: s}, nil
}

// Records returns a copy of the stored rows in insertion order
func (s *FakeStore) Records() []domain.VisitRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.VisitRecord, len(s.rows))
	copy(out, s.rows)
	return out
}

// TableExists reports whether the schema statement has run
func (s *FakeStore) TableExists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableExists
}

type fakeConn struct {
	store *FakeStore
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS criminal_ips") {
		return pgconn.CommandTag{}, fmt.Errorf("fake store: unexpected statement %q", sql)
	}
	s.SchemaCalls++
	if s.SchemaErr != nil {
		return pgconn.CommandTag{}, s.SchemaErr
	}
	s.tableExists = true
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case strings.Contains(sql, "INSERT INTO criminal_ips"):
		if !s.tableExists {
			return row{err: fmt.Errorf(`relation "criminal_ips" does not exist`)}
		}
		if s.InsertErr != nil {
			return row{err: s.InsertErr}
		}
		ip, ok := args[0].(string)
		if !ok || ip == "" {
			return row{err: fmt.Errorf("null value in column \"ip_address\"")}
		}
		if utf8.RuneCountInString(ip) > domain.MaxAddressLength {
			return row{err: fmt.Errorf("value too long for type character varying(45)")}
		}
		s.nextID++
		record := domain.VisitRecord{ID: s.nextID, IPAddress: ip, VisitTime: time.Now()}
		s.rows = append(s.rows, record)
		return row{values: []any{record.ID, record.VisitTime}}

	case strings.Contains(sql, "SELECT COUNT(*) FROM criminal_ips"):
		return row{values: []any{int64(len(s.rows))}}
	}

	return row{err: fmt.Errorf("fake store: unexpected query %q", sql)}
}

func (c *fakeConn) Ping(ctx context.Context) error {
	return nil
}

func (c *fakeConn) Close(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.Closes++
	return nil
}

type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("fake store: scan expects %d targets, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("fake store: unsupported scan target %T", d)
		}
	}
	return nil
}

var _ database.Connector = (*FakeStore)(nil)
