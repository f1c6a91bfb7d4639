package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/middleware"
	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type filesRepository interface {
	List() []models.StoredFile
	FindByID(id string) (models.StoredFile, bool)
	ByKind(kind enums.FileKind) []models.StoredFile
	ByWorker(workerID string) []models.StoredFile
	ByFarm(farmID string) []models.StoredFile
	ByIncident(incidentID string) []models.StoredFile
	ByAnimal(animalID string) []models.StoredFile
	Save(ctx context.Context, file models.StoredFile) (models.StoredFile, error)
	Delete(ctx context.Context, id string) (bool, error)
	MergeMetadata(ctx context.Context, id string, metadata map[string]any) (bool, error)
	LinkToIncident(ctx context.Context, id, incidentID string) (bool, error)
	LinkToAnimal(ctx context.Context, id, animalID string) (bool, error)
}

// ListFiles returns stored media, narrowed by at most one filter. The
// filters are checked in a fixed order; the first one present wins.
func ListFiles(files filesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		switch {
		case query.Get("kind") != "":
			kind, err := enums.ParseFileKind(query.Get("kind"))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown file kind"))
				return
			}
			responses.WriteSuccess(w, files.ByKind(kind))
		case query.Get("workerId") != "":
			responses.WriteSuccess(w, files.ByWorker(query.Get("workerId")))
		case query.Get("farmId") != "":
			responses.WriteSuccess(w, files.ByFarm(query.Get("farmId")))
		case query.Get("incidentId") != "":
			responses.WriteSuccess(w, files.ByIncident(query.Get("incidentId")))
		case query.Get("animalId") != "":
			responses.WriteSuccess(w, files.ByAnimal(query.Get("animalId")))
		default:
			responses.WriteSuccess(w, files.List())
		}
	}
}

// GetFile returns one stored media record, payload included.
func GetFile(files filesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := files.FindByID(chi.URLParam(r, "fileID"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
			return
		}
		responses.WriteSuccess(w, file)
	}
}

type uploadFileRequest struct {
	Kind       string         `json:"kind" validate:"required,oneof=audio photo"`
	Data       string         `json:"data" validate:"required,base64"`
	FileName   string         `json:"fileName" validate:"required"`
	MimeType   string         `json:"mimeType" validate:"required"`
	IncidentID string         `json:"incidentId"`
	AnimalID   string         `json:"animalId"`
	Location   *geo.Point     `json:"location"`
	Metadata   map[string]any `json:"metadata"`
}

// UploadFile stores a base64 media payload captured in the field. The
// record is stamped with the authenticated user, worker and farm.
func UploadFile(files filesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadFileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, _ := enums.ParseFileKind(req.Kind)
		file := models.StoredFile{
			Kind:       kind,
			Data:       req.Data,
			FileName:   req.FileName,
			MimeType:   req.MimeType,
			CreatedBy:  middleware.UserIDFromContext(r.Context()),
			WorkerID:   middleware.WorkerIDFromContext(r.Context()),
			FarmID:     middleware.FarmIDFromContext(r.Context()),
			IncidentID: req.IncidentID,
			AnimalID:   req.AnimalID,
			Location:   req.Location,
			Metadata:   req.Metadata,
		}

		stored, err := files.Save(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}

// DeleteFile removes a stored media record.
func DeleteFile(files filesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := files.Delete(r.Context(), chi.URLParam(r, "fileID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type fileLinksRequest struct {
	IncidentID string         `json:"incidentId"`
	AnimalID   string         `json:"animalId"`
	Metadata   map[string]any `json:"metadata"`
}

// UpdateFileLinks attaches a stored file to an incident or animal and
// merges extra metadata. Absent fields are left untouched.
func UpdateFileLinks(files filesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "fileID")
		var req fileLinksRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if req.IncidentID != "" {
			if ok, err := files.LinkToIncident(r.Context(), fileID, req.IncidentID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			} else if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
				return
			}
		}
		if req.AnimalID != "" {
			if ok, err := files.LinkToAnimal(r.Context(), fileID, req.AnimalID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			} else if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
				return
			}
		}
		if len(req.Metadata) > 0 {
			if ok, err := files.MergeMetadata(r.Context(), fileID, req.Metadata); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			} else if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
				return
			}
		}

		file, ok := files.FindByID(fileID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "file not found"))
			return
		}
		responses.WriteSuccess(w, file)
	}
}
