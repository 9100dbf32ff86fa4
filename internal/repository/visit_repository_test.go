package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDB for testing
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgx.Row)
}

// stubRow replays fixed values into Scan
type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestVisitRepository_EnsureSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := new(MockDB)
		db.On("Exec", ctx, CreateVisitsTableSQL, mock.Anything).
			Return(pgconn.NewCommandTag("CREATE TABLE"), nil).Twice()

		repo := NewVisitRepository(db)
		require.NoError(t, repo.EnsureSchema(ctx))
		require.NoError(t, repo.EnsureSchema(ctx))

		db.AssertExpectations(t)
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		cause := errors.New("permission denied for schema public")
		db := new(MockDB)
		db.On("Exec", ctx, CreateVisitsTableSQL, mock.Anything).
			Return(pgconn.CommandTag{}, cause)

		err := NewVisitRepository(db).EnsureSchema(ctx)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to ensure criminal_ips table")
	})
}

func TestVisitRepository_Insert(t *testing.T) {
	ctx := context.Background()
	visitTime := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	t.Run("address is bound as a parameter", func(t *testing.T) {
		hostile := "1.2.3.4'); DROP TABLE criminal_ips; --"
		db := new(MockDB)
		db.On("QueryRow", ctx, insertVisitSQL, []any{hostile}).
			Return(stubRow{values: []any{int64(7), visitTime}})

		record, err := NewVisitRepository(db).Insert(ctx, hostile)
		require.NoError(t, err)
		assert.Equal(t, int64(7), record.ID)
		assert.Equal(t, hostile, record.IPAddress)
		assert.Equal(t, visitTime, record.VisitTime)
		assert.NotContains(t, insertVisitSQL, hostile)
		assert.Contains(t, insertVisitSQL, "$1")
		assert.Contains(t, insertVisitSQL, "NOW()")

		db.AssertExpectations(t)
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		cause := errors.New("value too long for type character varying(45)")
		db := new(MockDB)
		db.On("QueryRow", ctx, insertVisitSQL, mock.Anything).Return(stubRow{err: cause})

		record, err := NewVisitRepository(db).Insert(ctx, "UNKNOWN")
		assert.Nil(t, record)
		assert.ErrorIs(t, err, cause)
	})
}

func TestVisitRepository_Count(t *testing.T) {
	ctx := context.Background()

	db := new(MockDB)
	db.On("QueryRow", ctx, countVisitsSQL, mock.Anything).Return(stubRow{values: []any{int64(42)}})

	count, err := NewVisitRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}
