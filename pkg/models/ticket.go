package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// SupportTicket is a client-reported issue worked by support staff, accruing
// hours against the owning user's license budget.
type SupportTicket struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      enums.TicketStatus   `json:"status"`
	Priority    enums.TicketPriority `json:"priority"`
	CreatedAt   time.Time            `json:"createdAt"`
	ClosedAt    *time.Time           `json:"closedAt,omitempty"`
	HoursSpent  float64              `json:"hoursSpent"`
	Cost        decimal.Decimal      `json:"cost"`
}

// EntityID implements the collection element contract.
func (t SupportTicket) EntityID() string { return t.ID }
