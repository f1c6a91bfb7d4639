package controllers

import (
	"context"
	"net/http"
	"time"

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

type incidentsRepository interface {
	List() []models.Incident
	FindByID(id string) (models.Incident, bool)
	ByWorker(workerID string) []models.Incident
	ByStatus(status enums.IncidentStatus) []models.Incident
	Create(ctx context.Context, incident models.Incident) error
	Update(ctx context.Context, incident models.Incident) (bool, error)
	NextID() string
}

type workerNameLookup interface {
	FindByID(id string) (models.FieldWorker, bool)
}

// ListIncidents returns all incidents, optionally one worker's.
func ListIncidents(incidents incidentsRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := incidents.List()
		if workerID := r.URL.Query().Get("workerId"); workerID != "" {
			records = incidents.ByWorker(workerID)
		} else if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseIncidentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown incident status"))
				return
			}
			records = incidents.ByStatus(status)
		}
		views := make([]incidentView, 0, len(records))
		for _, record := range records {
			views = append(views, newIncidentView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

type createIncidentRequest struct {
	Type        string     `json:"type" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Location    *geo.Point `json:"location"`
	AudioFileID string     `json:"audioFileId"`
	PhotoFileID string     `json:"photoFileId"`
}

// CreateIncident reports a farm problem. When the caller is a field
// worker, the record is attributed to them and their daily counter is
// bumped.
func CreateIncident(incidents incidentsRepository, workers workerNameLookup, tracker telemetry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIncidentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		incident := models.Incident{
			ID:          incidents.NextID(),
			Type:        req.Type,
			Description: req.Description,
			Date:        time.Now(),
			Status:      enums.IncidentStatusPending,
			Location:    req.Location,
			AudioFileID: req.AudioFileID,
			PhotoFileID: req.PhotoFileID,
		}

		if workerID := middleware.WorkerIDFromContext(r.Context()); workerID != "" {
			incident.WorkerID = workerID
			if worker, ok := workers.FindByID(workerID); ok {
				incident.WorkerName = worker.Name
			}
		}

		if err := incidents.Create(r.Context(), incident); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if incident.WorkerID != "" {
			if _, err := tracker.IncidentReported(r.Context(), incident.WorkerID); err != nil {
				ctx := logg.WithField(r.Context(), "worker_id", incident.WorkerID)
				logg.Error(ctx, "incident.counter_bump_failed", err)
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newIncidentView(incident))
	}
}

type incidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved"`
}

// SetIncidentStatus moves an incident through its states.
func SetIncidentStatus(incidents incidentsRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		incidentID := chi.URLParam(r, "incidentID")
		var req incidentStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		incident, ok := incidents.FindByID(incidentID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "incident not found"))
			return
		}

		status, _ := enums.ParseIncidentStatus(req.Status)
		incident.Status = status
		if _, err := incidents.Update(r.Context(), incident); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newIncidentView(incident))
	}
}
