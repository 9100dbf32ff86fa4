package service

import (
	"context"
	"time"

	"seized-page/internal/domain"
	"seized-page/internal/repository"
	"seized-page/pkg/database"
	"seized-page/pkg/errors"
	"seized-page/pkg/logger"
)

// closeTimeout bounds the Terminate message sent when a connection is closed
const closeTimeout = 2 * time.Second

// visitService persists visits over one short-lived connection per call
type visitService struct {
	connector    database.Connector
	newRepo      func(repository.DBTX) repository.VisitRepository
	queryTimeout time.Duration
	counter      VisitCounter
	logger       *logger.Logger
}

// VisitServiceOption customizes a visit service
type VisitServiceOption func(*visitService)

// WithQueryTimeout bounds connect, schema and insert together
func WithQueryTimeout(d time.Duration) VisitServiceOption {
	return func(s *visitService) {
		s.queryTimeout = d
	}
}

// WithCounter bumps counter after every stored visit
func WithCounter(counter VisitCounter) VisitServiceOption {
	return func(s *visitService) {
		s.counter = counter
	}
}

// NewVisitService creates a new visit service
func NewVisitService(connector database.Connector, logger *logger.Logger, opts ...VisitServiceOption) VisitService {
	s := &visitService{
		connector: connector,
		newRepo:   repository.NewVisitRepository,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Persist records one visit. Calls are not idempotent: every call inserts a new row.
func (s *visitService) Persist(ctx context.Context, ipAddress string) (*domain.VisitRecord, error) {
	if ipAddress == "" {
		ipAddress = domain.UnknownAddress
	}

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	conn, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to connect to database", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	repo := s.newRepo(conn)

	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, errors.NewPersistenceError("failed to ensure visit table", err)
	}

	record, err := repo.Insert(ctx, ipAddress)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to insert visit", err)
	}

	if s.counter != nil {
		if err := s.counter.Increment(ctx); err != nil {
			s.logger.WithError(err).Warn("Failed to increment visit counters")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"id": record.ID,
		"ip": record.IPAddress,
	}).Debug("Visit recorded")

	return record, nil
}
