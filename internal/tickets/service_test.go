package tickets

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type fakeTickets struct {
	rows []models.SupportTicket
}

func (f *fakeTickets) List() []models.SupportTicket { return f.rows }

func (f *fakeTickets) FindByID(id string) (models.SupportTicket, bool) {
	for _, t := range f.rows {
		if t.ID == id {
			return t, true
		}
	}
	return models.SupportTicket{}, false
}

func (f *fakeTickets) ByUser(userID string) []models.SupportTicket {
	var out []models.SupportTicket
	for _, t := range f.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeTickets) Create(_ context.Context, ticket models.SupportTicket) error {
	f.rows = append(f.rows, ticket)
	return nil
}

func (f *fakeTickets) Update(_ context.Context, ticket models.SupportTicket) (bool, error) {
	for i, t := range f.rows {
		if t.ID == ticket.ID {
			f.rows[i] = ticket
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTickets) NextID() string {
	return fmt.Sprintf("TIC%03d", len(f.rows)+1)
}

type fakeUsers struct{ ids map[string]bool }

func (f *fakeUsers) FindByID(id string) (models.User, bool) {
	if f.ids[id] {
		return models.User{ID: id}, true
	}
	return models.User{}, false
}

type fakeLicenses struct {
	rows []models.License
}

func (f *fakeLicenses) ActiveForUser(userID string) (models.License, bool) {
	for _, l := range f.rows {
		if l.UserID == userID && l.Status == enums.LicenseStatusActive {
			return l, true
		}
	}
	return models.License{}, false
}

func (f *fakeLicenses) Update(_ context.Context, license models.License) (bool, error) {
	for i, l := range f.rows {
		if l.ID == license.ID {
			f.rows[i] = license
			return true, nil
		}
	}
	return false, nil
}

var testNow = time.Date(2025, time.May, 10, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, tickets *fakeTickets, users *fakeUsers, licenses *fakeLicenses) Service {
	t.Helper()
	svc, err := NewService(tickets, users, licenses, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateTicket(t *testing.T) {
	tickets := &fakeTickets{}
	svc := newTestService(t, tickets, &fakeUsers{ids: map[string]bool{"user1": true}}, &fakeLicenses{})

	ticket, err := svc.CreateTicket(context.Background(), "user1", "Erro no relatório", "Relatório mensal quebrado", enums.TicketPriorityHigh)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.ID != "TIC001" {
		t.Errorf("id = %s, want TIC001", ticket.ID)
	}
	if ticket.Status != enums.TicketStatusOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if ticket.HoursSpent != 0 || !ticket.Cost.IsZero() {
		t.Errorf("new ticket must start with zero hours and cost, got %v / %s", ticket.HoursSpent, ticket.Cost)
	}
}

func TestCreateTicketUnknownUser(t *testing.T) {
	svc := newTestService(t, &fakeTickets{}, &fakeUsers{}, &fakeLicenses{})
	if _, err := svc.CreateTicket(context.Background(), "ghost", "x", "y", enums.TicketPriorityLow); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestSetStatusClosedStampsClosedAt(t *testing.T) {
	tickets := &fakeTickets{rows: []models.SupportTicket{{ID: "TIC001", Status: enums.TicketStatusInProgress}}}
	svc := newTestService(t, tickets, &fakeUsers{}, &fakeLicenses{})

	ok, err := svc.SetStatus(context.Background(), "TIC001", enums.TicketStatusClosed)
	if err != nil || !ok {
		t.Fatalf("SetStatus = %v, %v", ok, err)
	}
	if tickets.rows[0].ClosedAt == nil || !tickets.rows[0].ClosedAt.Equal(testNow) {
		t.Errorf("closedAt = %v, want %v", tickets.rows[0].ClosedAt, testNow)
	}

	// Reopening clears the stamp.
	if ok, _ := svc.SetStatus(context.Background(), "TIC001", enums.TicketStatusOpen); !ok {
		t.Fatal("reopen failed")
	}
	if tickets.rows[0].ClosedAt != nil {
		t.Error("closedAt must clear on reopen")
	}
}

func TestLogHoursDebitsLicense(t *testing.T) {
	tickets := &fakeTickets{rows: []models.SupportTicket{{ID: "TIC001", UserID: "user1", Cost: decimal.Zero}}}
	licenses := &fakeLicenses{rows: []models.License{{
		ID:           "LIC001",
		UserID:       "user1",
		Status:       enums.LicenseStatusActive,
		SupportHours: 3,
	}}}
	svc := newTestService(t, tickets, &fakeUsers{}, licenses)

	ok, err := svc.LogHours(context.Background(), "TIC001", 1.5)
	if err != nil || !ok {
		t.Fatalf("LogHours = %v, %v", ok, err)
	}
	if tickets.rows[0].HoursSpent != 1.5 {
		t.Errorf("hoursSpent = %v, want 1.5", tickets.rows[0].HoursSpent)
	}
	if !tickets.rows[0].Cost.Equal(decimal.NewFromInt(150)) {
		t.Errorf("cost = %s, want 150", tickets.rows[0].Cost)
	}
	if licenses.rows[0].SupportHoursUsed != 1.5 {
		t.Errorf("supportHoursUsed = %v, want 1.5", licenses.rows[0].SupportHoursUsed)
	}
}

func TestLogHoursRejectsNonPositive(t *testing.T) {
	svc := newTestService(t, &fakeTickets{}, &fakeUsers{}, &fakeLicenses{})
	if _, err := svc.LogHours(context.Background(), "TIC001", 0); err == nil {
		t.Fatal("expected validation error")
	}
}
