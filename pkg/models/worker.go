package models

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
)

// TimedPoint is a route sample: where a worker was and when.
type TimedPoint struct {
	geo.Point
	Timestamp time.Time `json:"timestamp"`
}

// FieldWorker is the on-site staff record. Distance and active time are
// accumulated incrementally by the telemetry aggregator; the live route is
// replaced wholesale when a tracking session closes out.
type FieldWorker struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Sector         string             `json:"sector,omitempty"`
	Status         enums.WorkerStatus `json:"status"`
	LastLocation   *TimedPoint        `json:"lastLocation,omitempty"`
	Route          []TimedPoint       `json:"route"`
	IncidentsToday int                `json:"incidentsToday"`
	DistanceKm     float64            `json:"distanceKm"`
	ActiveSeconds  int64              `json:"activeSeconds"`
}

// EntityID implements the collection element contract.
func (w FieldWorker) EntityID() string { return w.ID }

// RouteArchive is a closed-out tracking session, keyed by worker and date.
type RouteArchive struct {
	WorkerID string       `json:"workerId"`
	Date     time.Time    `json:"date"`
	Route    []TimedPoint `json:"route"`
}

// EntityID implements the collection element contract. One archive exists
// per worker per calendar day.
func (r RouteArchive) EntityID() string {
	return r.WorkerID + "_" + r.Date.Format("2006-01-02")
}
