package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type ticketsRepository interface {
	List() []models.SupportTicket
	FindByID(id string) (models.SupportTicket, bool)
	ByUser(userID string) []models.SupportTicket
	Create(ctx context.Context, ticket models.SupportTicket) error
	Update(ctx context.Context, ticket models.SupportTicket) (bool, error)
	NextID() string
}

type usersRepository interface {
	FindByID(id string) (models.User, bool)
}

type licensesRepository interface {
	ActiveForUser(userID string) (models.License, bool)
	Update(ctx context.Context, license models.License) (bool, error)
}

// HourlyRate is what support time costs once logged against a ticket.
var HourlyRate = decimal.NewFromInt(100)

// Service manages support tickets and their pull on license hours.
type Service interface {
	ListTickets() []models.SupportTicket
	TicketsForUser(userID string) []models.SupportTicket
	CreateTicket(ctx context.Context, userID, title, description string, priority enums.TicketPriority) (models.SupportTicket, error)
	SetStatus(ctx context.Context, ticketID string, status enums.TicketStatus) (bool, error)
	LogHours(ctx context.Context, ticketID string, hours float64) (bool, error)
}

type service struct {
	tickets  ticketsRepository
	users    usersRepository
	licenses licensesRepository
	now      func() time.Time
}

// Option tweaks service construction.
type Option func(*service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService builds the ticket service.
func NewService(tickets ticketsRepository, users usersRepository, licenses licensesRepository, opts ...Option) (Service, error) {
	if tickets == nil {
		return nil, fmt.Errorf("tickets repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if licenses == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	s := &service{tickets: tickets, users: users, licenses: licenses, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) ListTickets() []models.SupportTicket {
	return s.tickets.List()
}

func (s *service) TicketsForUser(userID string) []models.SupportTicket {
	return s.tickets.ByUser(userID)
}

// CreateTicket opens a ticket for an existing user. Hours and cost start
// at zero and accrue through LogHours.
func (s *service) CreateTicket(ctx context.Context, userID, title, description string, priority enums.TicketPriority) (models.SupportTicket, error) {
	if _, ok := s.users.FindByID(userID); !ok {
		return models.SupportTicket{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %s not found", userID))
	}
	if title == "" {
		return models.SupportTicket{}, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if !priority.IsValid() {
		priority = enums.TicketPriorityMedium
	}

	ticket := models.SupportTicket{
		ID:          s.tickets.NextID(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      enums.TicketStatusOpen,
		Priority:    priority,
		CreatedAt:   s.now(),
		Cost:        decimal.Zero,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return models.SupportTicket{}, err
	}
	return ticket, nil
}

// SetStatus moves a ticket through open, in-progress, closed. Closing
// stamps closedAt. Reports false for unknown tickets.
func (s *service) SetStatus(ctx context.Context, ticketID string, status enums.TicketStatus) (bool, error) {
	if !status.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown ticket status %q", status))
	}
	ticket, ok := s.tickets.FindByID(ticketID)
	if !ok {
		return false, nil
	}
	ticket.Status = status
	if status == enums.TicketStatusClosed {
		closedAt := s.now()
		ticket.ClosedAt = &closedAt
	} else {
		ticket.ClosedAt = nil
	}
	return s.tickets.Update(ctx, ticket)
}

// LogHours accrues support time on the ticket and debits the owner's
// active license budget when one exists. Going past the budget is
// allowed; the overshoot shows up in the ticket cost.
func (s *service) LogHours(ctx context.Context, ticketID string, hours float64) (bool, error) {
	if hours <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "hours must be positive")
	}
	ticket, ok := s.tickets.FindByID(ticketID)
	if !ok {
		return false, nil
	}

	ticket.HoursSpent += hours
	ticket.Cost = ticket.Cost.Add(HourlyRate.Mul(decimal.NewFromFloat(hours)))
	if _, err := s.tickets.Update(ctx, ticket); err != nil {
		return false, err
	}

	if license, ok := s.licenses.ActiveForUser(ticket.UserID); ok {
		license.SupportHoursUsed += hours
		if _, err := s.licenses.Update(ctx, license); err != nil {
			return false, err
		}
	}
	return true, nil
}
