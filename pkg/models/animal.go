package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
)

// Animal is a herd record. Status stays free text (breeding state, health
// notes); display hints are derived at presentation time, never stored.
type Animal struct {
	ID           string           `json:"id"`
	Type         enums.AnimalType `json:"type"`
	Name         string           `json:"name"`
	Age          string           `json:"age"`
	Status       string           `json:"status"`
	LastEvent    string           `json:"lastEvent,omitempty"`
	RegisteredAt time.Time        `json:"registeredAt"`
	PhotoFileID  string           `json:"photoFileId,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// EntityID implements the collection element contract.
func (a Animal) EntityID() string { return a.ID }
