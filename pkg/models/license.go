package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// License is the entitlement record governing a client user's access window
// and support-hour budget.
type License struct {
	ID               string              `json:"id"`
	UserID           string              `json:"userId"`
	PlanType         enums.PlanType      `json:"planType"`
	StartDate        time.Time           `json:"startDate"`
	EndDate          time.Time           `json:"endDate"`
	Price            decimal.Decimal     `json:"price"`
	Status           enums.LicenseStatus `json:"status"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus"`
	PaymentDate      *time.Time          `json:"paymentDate,omitempty"`
	SupportHours     float64             `json:"supportHours"`
	SupportHoursUsed float64             `json:"supportHoursUsed"`
}

// EntityID implements the collection element contract.
func (l License) EntityID() string { return l.ID }
