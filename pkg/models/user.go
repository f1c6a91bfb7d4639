package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
)

// User represents the canonical identity entity. Credentials are stored in
// the clear; the record lives entirely in client-local storage and real
// password hashing is out of scope.
type User struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Password      string           `json:"password"`
	Role          enums.UserRole   `json:"role"`
	Status        enums.UserStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	ExpiresAt     *time.Time       `json:"expiresAt"`
	LastLogin     *time.Time       `json:"lastLogin"`
	FarmID        string           `json:"farmId,omitempty"`
	FarmName      string           `json:"farmName,omitempty"`
	FieldWorkerID string           `json:"fieldWorkerId,omitempty"`
}

// EntityID implements the collection element contract.
func (u User) EntityID() string { return u.ID }
