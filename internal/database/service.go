package database

import (
	"github.com/leandro-lugaresi/hub"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/mindhaven/sentinel/internal/database/service"
	"github.com/mindhaven/sentinel/internal/ratelimit"
	"github.com/mindhaven/sentinel/internal/setup/config"
)

// Service provides access to all business logic services.
type Service struct {
	analysis   *service.AnalysisService
	moderation *service.ModerationService
	ticket     *service.TicketService
}

// NewService creates a new service instance with all services.
func NewService(
	db *bun.DB, repository *Repository, eventHub *hub.Hub, limits config.RateLimits, logger *zap.Logger,
) *Service {
	limiter := ratelimit.NewLimiter(repository.Ticket(), limits, logger)

	return &Service{
		analysis: service.NewAnalysis(db, eventHub, logger),
		moderation: service.NewModeration(
			repository.Message(),
			repository.Violation(),
			repository.User(),
			repository.Activity(),
			logger,
		),
		ticket: service.NewTicket(repository.Ticket(), limiter, logger),
	}
}

// Analysis returns the batch analysis commit service.
func (s *Service) Analysis() *service.AnalysisService {
	return s.analysis
}

// Moderation returns the administrator moderation service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}

// Ticket returns the support ticket service.
func (s *Service) Ticket() *service.TicketService {
	return s.ticket
}
