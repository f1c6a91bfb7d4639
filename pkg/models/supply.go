package models

import "github.com/fazendaapp/fazenda-backend/pkg/enums"

// Supply is a restocking request raised from the field.
type Supply struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Quantity int                 `json:"quantity"`
	Unit     string              `json:"unit"`
	Urgency  enums.SupplyUrgency `json:"urgency"`
}

// EntityID implements the collection element contract.
func (s Supply) EntityID() string { return s.ID }
