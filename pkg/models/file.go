package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
)

// StoredFile is a captured media record (audio or photo) with its base64
// payload inline, optionally linked to the entities it documents.
type StoredFile struct {
	ID         string         `json:"id"`
	Kind       enums.FileKind `json:"kind"`
	Data       string         `json:"data"`
	FileName   string         `json:"fileName"`
	MimeType   string         `json:"mimeType"`
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy"`
	WorkerID   string         `json:"workerId,omitempty"`
	FarmID     string         `json:"farmId,omitempty"`
	IncidentID string         `json:"incidentId,omitempty"`
	AnimalID   string         `json:"animalId,omitempty"`
	Location   *geo.Point     `json:"location,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// EntityID implements the collection element contract.
func (f StoredFile) EntityID() string { return f.ID }
