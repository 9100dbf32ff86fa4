package service

import (
	"context"

	"seized-page/internal/domain"
)

// VisitService defines the interface for recording page visits
type VisitService interface {
	// Persist opens a connection, ensures the schema and inserts one visit.
	// Any failure is returned as a persistence *errors.AppError; nothing is logged.
	Persist(ctx context.Context, ipAddress string) (*domain.VisitRecord, error)
}

// VisitCounter defines the interface for the optional Redis visit counters
type VisitCounter interface {
	// Increment bumps the total and today's counter
	Increment(ctx context.Context) error

	// GetStats retrieves current counter values
	GetStats(ctx context.Context) (*domain.VisitStats, error)
}

// Services aggregates all service interfaces
type Services struct {
	Visit   VisitService
	Counter VisitCounter // nil when Redis is not configured
}
