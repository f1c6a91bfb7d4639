package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/middleware"
	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/internal/telemetry"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type workersRepository interface {
	List() []models.FieldWorker
	FindByID(id string) (models.FieldWorker, bool)
	Update(ctx context.Context, worker models.FieldWorker) (bool, error)
}

// ListWorkers returns every field worker.
func ListWorkers(workers workersRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := workers.List()
		views := make([]workerView, 0, len(records))
		for _, record := range records {
			views = append(views, newWorkerView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

// GetWorker returns one field worker.
func GetWorker(workers workersRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		worker, ok := workers.FindByID(chi.URLParam(r, "workerID"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}
		responses.WriteSuccess(w, newWorkerView(worker))
	}
}

type workerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused inactive"`
}

// SetWorkerStatus flips a worker between active, paused and inactive.
func SetWorkerStatus(workers workersRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "workerID")
		var req workerStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, ok := workers.FindByID(workerID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}

		status, _ := enums.ParseWorkerStatus(req.Status)
		worker.Status = status
		if _, err := workers.Update(r.Context(), worker); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newWorkerView(worker))
	}
}

type recordPositionRequest struct {
	Lat       float64             `json:"lat" validate:"min=-90,max=90"`
	Lng       float64             `json:"lng" validate:"min=-180,max=180"`
	FullRoute []models.TimedPoint `json:"fullRoute"`
	CloseOut  bool                `json:"closeOut"`
}

// RecordPosition ingests a GPS sample for the authenticated worker, or
// for an explicit worker when a farm owner posts on their behalf.
func RecordPosition(tracker telemetry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "workerID")
		if workerID == "" {
			workerID = middleware.WorkerIDFromContext(r.Context())
		}
		var req recordPositionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := tracker.RecordPosition(r.Context(), workerID, geo.Point{Lat: req.Lat, Lng: req.Lng}, req.FullRoute, req.CloseOut)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

type addActivityRequest struct {
	DistanceKm    float64 `json:"distanceKm" validate:"min=0"`
	ActiveSeconds int64   `json:"activeSeconds" validate:"min=0"`
}

// AddActivity accrues distance and active time directly, for clients
// that aggregate on-device.
func AddActivity(tracker telemetry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "workerID")
		if workerID == "" {
			workerID = middleware.WorkerIDFromContext(r.Context())
		}
		var req addActivityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := tracker.AddActivity(r.Context(), workerID, req.DistanceKm, req.ActiveSeconds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

// WorkerStatistics returns the aggregated numbers for one worker.
func WorkerStatistics(tracker telemetry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID := chi.URLParam(r, "workerID")
		stats, ok := tracker.Statistics(workerID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// WorkerRouteHistory returns the closed-out tracking sessions for one
// worker, newest first.
func WorkerRouteHistory(tracker telemetry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, tracker.RouteHistory(chi.URLParam(r, "workerID")))
	}
}
