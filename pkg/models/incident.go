package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
)

// Incident is a reported farm problem, optionally geolocated and backed by
// audio/photo evidence captured by a field worker.
type Incident struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Description string               `json:"description"`
	Date        time.Time            `json:"date"`
	Status      enums.IncidentStatus `json:"status"`
	Location    *geo.Point           `json:"location,omitempty"`
	AudioFileID string               `json:"audioFileId,omitempty"`
	PhotoFileID string               `json:"photoFileId,omitempty"`
	WorkerID    string               `json:"workerId,omitempty"`
	WorkerName  string               `json:"workerName,omitempty"`
}

// EntityID implements the collection element contract.
func (i Incident) EntityID() string { return i.ID }
