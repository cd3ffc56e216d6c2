package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindhaven/sentinel/internal/database/types/enum"
)

// SupportTicket represents a user-initiated support request. Only the fields
// the rate limiter and creation path need are modeled here.
type SupportTicket struct {
	ID        uuid.UUID           `bun:",pk,type:uuid"`
	UserID    string              `bun:",notnull"`
	Subject   string              `bun:",notnull"`
	Body      string              `bun:",type:text"`
	Priority  enum.TicketPriority `bun:",notnull"`
	CreatedAt time.Time           `bun:",notnull"`
}
