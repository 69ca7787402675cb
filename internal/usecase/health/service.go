// Package health aggregates dependency checks into one service status.
package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
)

// Status is the aggregate service state.
type Status string

const (
	// StatusOK means every dependency answered.
	StatusOK Status = "ok"
	// StatusDegraded means the embedding provider is unreachable; search
	// still works on the lexical path.
	StatusDegraded Status = "degraded"
	// StatusDown means the content store is unreachable and search cannot
	// serve results at all.
	StatusDown Status = "down"
)

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Report is the result of one health check.
type Report struct {
	Status   Status
	StoreErr error
	EmbedErr error
}

// Service checks the store and, when configured, the embedding provider.
type Service struct {
	store    Pinger
	embedder domain.HealthChecker
	logger   *zap.Logger
}

// New creates a health service. embedder may be nil for lexical-only
// deployments.
func New(store Pinger, embedder domain.HealthChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, embedder: embedder, logger: logger}
}

// Check probes the dependencies. The store is load-bearing; the provider
// only degrades.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Status: StatusOK}

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("Content store health check failed", zap.Error(err))
		report.Status = StatusDown
		report.StoreErr = err
		return report
	}

	if s.embedder != nil {
		if err := s.embedder.HealthCheck(ctx); err != nil {
			s.logger.Warn("Embedding provider health check failed", zap.Error(err))
			report.Status = StatusDegraded
			report.EmbedErr = err
		}
	}
	return report
}
