package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/geo"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type workersRepository interface {
	FindByID(id string) (models.FieldWorker, bool)
	Update(ctx context.Context, worker models.FieldWorker) (bool, error)
	ArchiveRoute(ctx context.Context, archive models.RouteArchive) error
	RouteHistory(workerID string) []models.RouteArchive
}

type incidentsRepository interface {
	CountByWorker(workerID string) int
}

type tasksRepository interface {
	CountCompletedByWorker(workerID string) int
}

// Statistics is the read-side aggregation for one worker.
type Statistics struct {
	DistanceKm        float64 `json:"distanceKm"`
	ActiveSeconds     int64   `json:"activeSeconds"`
	IncidentsReported int     `json:"incidentsReported"`
	TasksCompleted    int     `json:"tasksCompleted"`
}

// Service accumulates field-worker routes, distance, and activity.
type Service interface {
	RecordPosition(ctx context.Context, workerID string, point geo.Point, fullRoute []models.TimedPoint, closeOut bool) (bool, error)
	AddActivity(ctx context.Context, workerID string, distanceKm float64, activeSeconds int64) (bool, error)
	IncidentReported(ctx context.Context, workerID string) (bool, error)
	Statistics(workerID string) (Statistics, bool)
	RouteHistory(workerID string) []models.RouteArchive
}

type service struct {
	workers      workersRepository
	incidents    incidentsRepository
	tasks        tasksRepository
	noiseFloorKm float64
	now          func() time.Time
}

// Option tweaks service construction.
type Option func(*service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService builds the telemetry aggregator. noiseFloorMeters is the
// GPS jitter threshold: position deltas below it do not accrue distance.
func NewService(workers workersRepository, incidents incidentsRepository, tasks tasksRepository, noiseFloorMeters float64, opts ...Option) (Service, error) {
	if workers == nil {
		return nil, fmt.Errorf("workers repository required")
	}
	if incidents == nil {
		return nil, fmt.Errorf("incidents repository required")
	}
	if tasks == nil {
		return nil, fmt.Errorf("tasks repository required")
	}
	if noiseFloorMeters < 0 {
		return nil, fmt.Errorf("noise floor must not be negative")
	}
	s := &service{
		workers:      workers,
		incidents:    incidents,
		tasks:        tasks,
		noiseFloorKm: noiseFloorMeters / 1000,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RecordPosition updates a worker's last location and route. With a
// fullRoute it replaces the live route wholesale; with closeOut it first
// archives the current route under the worker and date, then restarts
// the route from the given point alone. Without a fullRoute the point is
// appended. Distance accrues from the previous last location, with the
// noise floor applied on every path. Reports false for unknown workers.
func (s *service) RecordPosition(ctx context.Context, workerID string, point geo.Point, fullRoute []models.TimedPoint, closeOut bool) (bool, error) {
	worker, ok := s.workers.FindByID(workerID)
	if !ok {
		return false, nil
	}

	now := s.now()
	sample := models.TimedPoint{Point: point, Timestamp: now}

	if worker.LastLocation != nil {
		delta := geo.DistanceKm(worker.LastLocation.Point, point)
		if delta >= s.noiseFloorKm {
			worker.DistanceKm += delta
		}
	}
	worker.LastLocation = &sample

	switch {
	case len(fullRoute) > 0 && closeOut:
		if len(worker.Route) > 0 {
			archive := models.RouteArchive{
				WorkerID: workerID,
				Date:     now,
				Route:    worker.Route,
			}
			if err := s.workers.ArchiveRoute(ctx, archive); err != nil {
				return false, err
			}
		}
		worker.Route = []models.TimedPoint{sample}
	case len(fullRoute) > 0:
		worker.Route = fullRoute
	default:
		worker.Route = append(worker.Route, sample)
	}

	return s.workers.Update(ctx, worker)
}

// AddActivity folds a tracking session's totals into the worker record.
func (s *service) AddActivity(ctx context.Context, workerID string, distanceKm float64, activeSeconds int64) (bool, error) {
	worker, ok := s.workers.FindByID(workerID)
	if !ok {
		return false, nil
	}
	worker.DistanceKm += distanceKm
	worker.ActiveSeconds += activeSeconds
	return s.workers.Update(ctx, worker)
}

// IncidentReported bumps the worker's daily incident counter.
func (s *service) IncidentReported(ctx context.Context, workerID string) (bool, error) {
	worker, ok := s.workers.FindByID(workerID)
	if !ok {
		return false, nil
	}
	worker.IncidentsToday++
	return s.workers.Update(ctx, worker)
}

// Statistics aggregates across the worker, incident, and task
// repositories. Distance and time come off the worker record itself.
func (s *service) Statistics(workerID string) (Statistics, bool) {
	worker, ok := s.workers.FindByID(workerID)
	if !ok {
		return Statistics{}, false
	}
	return Statistics{
		DistanceKm:        worker.DistanceKm,
		ActiveSeconds:     worker.ActiveSeconds,
		IncidentsReported: s.incidents.CountByWorker(workerID),
		TasksCompleted:    s.tasks.CountCompletedByWorker(workerID),
	}, true
}

func (s *service) RouteHistory(workerID string) []models.RouteArchive {
	return s.workers.RouteHistory(workerID)
}
