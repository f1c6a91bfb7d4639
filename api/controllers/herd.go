package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type herdRepository interface {
	List() []models.Animal
	ByType(animalType enums.AnimalType) []models.Animal
	FindByID(id string) (models.Animal, bool)
	Create(ctx context.Context, animal models.Animal) error
	Update(ctx context.Context, animal models.Animal) (bool, error)
	NextID(animalType enums.AnimalType) string
}

// ListAnimals returns the herd, optionally one sub-type.
func ListAnimals(herd herdRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("type"); raw != "" {
			animalType, err := enums.ParseAnimalType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown animal type"))
				return
			}
			responses.WriteSuccess(w, newAnimalViews(herd.ByType(animalType)))
			return
		}
		responses.WriteSuccess(w, newAnimalViews(herd.List()))
	}
}

// GetAnimal returns one herd record.
func GetAnimal(herd herdRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animal, ok := herd.FindByID(chi.URLParam(r, "animalID"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "animal not found"))
			return
		}
		responses.WriteSuccess(w, newAnimalView(animal))
	}
}

type createAnimalRequest struct {
	Type   string `json:"type" validate:"required,oneof=cow bull calf"`
	Name   string `json:"name" validate:"required"`
	Age    string `json:"age" validate:"required"`
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// CreateAnimal registers a herd record with a sub-type scoped id.
func CreateAnimal(herd herdRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		animalType, _ := enums.ParseAnimalType(req.Type)
		animal := models.Animal{
			ID:           herd.NextID(animalType),
			Type:         animalType,
			Name:         req.Name,
			Age:          req.Age,
			Status:       req.Status,
			RegisteredAt: time.Now(),
			Notes:        req.Notes,
		}
		if err := herd.Create(r.Context(), animal); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAnimalView(animal))
	}
}

type updateAnimalRequest struct {
	Name        string `json:"name" validate:"required"`
	Age         string `json:"age" validate:"required"`
	Status      string `json:"status" validate:"required"`
	LastEvent   string `json:"lastEvent"`
	PhotoFileID string `json:"photoFileId"`
	Notes       string `json:"notes"`
}

// UpdateAnimal replaces the mutable fields of a herd record.
func UpdateAnimal(herd herdRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		var req updateAnimalRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		animal, ok := herd.FindByID(animalID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "animal not found"))
			return
		}
		animal.Name = req.Name
		animal.Age = req.Age
		animal.Status = req.Status
		animal.LastEvent = req.LastEvent
		animal.Notes = req.Notes
		if req.PhotoFileID != "" {
			animal.PhotoFileID = req.PhotoFileID
		}

		if _, err := herd.Update(r.Context(), animal); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAnimalView(animal))
	}
}
