package database

import (
	"github.com/leandro-lugaresi/hub"
	"github.com/mindhaven/sentinel/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	message   *models.MessageModel
	violation *models.ViolationModel
	profile   *models.ProfileModel
	user      *models.UserModel
	activity  *models.ActivityModel
	ticket    *models.TicketModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, eventHub *hub.Hub, logger *zap.Logger) *Repository {
	return &Repository{
		message:   models.NewMessage(db, eventHub, logger),
		violation: models.NewViolation(db, eventHub, logger),
		profile:   models.NewProfile(db, eventHub, logger),
		user:      models.NewUser(db, logger),
		activity:  models.NewActivity(db, logger),
		ticket:    models.NewTicket(db, logger),
	}
}

// Message returns the message model repository.
func (r *Repository) Message() *models.MessageModel {
	return r.message
}

// Violation returns the violation model repository.
func (r *Repository) Violation() *models.ViolationModel {
	return r.violation
}

// Profile returns the risk profile model repository.
func (r *Repository) Profile() *models.ProfileModel {
	return r.profile
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Activity returns the audit log model repository.
func (r *Repository) Activity() *models.ActivityModel {
	return r.activity
}

// Ticket returns the support ticket model repository.
func (r *Repository) Ticket() *models.TicketModel {
	return r.ticket
}
