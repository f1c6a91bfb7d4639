package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type suppliesRepository interface {
	List() []models.Supply
	FindByID(id string) (models.Supply, bool)
	Create(ctx context.Context, supply models.Supply) error
	Update(ctx context.Context, supply models.Supply) (bool, error)
	NextID() string
}

// ListSupplies returns every restocking request.
func ListSupplies(supplies suppliesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := supplies.List()
		views := make([]supplyView, 0, len(records))
		for _, record := range records {
			views = append(views, newSupplyView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

type createSupplyRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Unit     string `json:"unit" validate:"required"`
	Urgency  string `json:"urgency" validate:"required,oneof=normal important urgent"`
}

// CreateSupply raises a restocking request from the field.
func CreateSupply(supplies suppliesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSupplyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		urgency, _ := enums.ParseSupplyUrgency(req.Urgency)
		supply := models.Supply{
			ID:       supplies.NextID(),
			Name:     req.Name,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Urgency:  urgency,
		}
		if err := supplies.Create(r.Context(), supply); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSupplyView(supply))
	}
}

type updateSupplyRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Urgency  string `json:"urgency" validate:"required,oneof=normal important urgent"`
}

// UpdateSupply adjusts an open request, after a partial delivery or a
// priority change.
func UpdateSupply(supplies suppliesRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplyID := chi.URLParam(r, "supplyID")
		var req updateSupplyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supply, ok := supplies.FindByID(supplyID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "supply not found"))
			return
		}
		urgency, _ := enums.ParseSupplyUrgency(req.Urgency)
		supply.Quantity = req.Quantity
		supply.Urgency = urgency

		if _, err := supplies.Update(r.Context(), supply); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSupplyView(supply))
	}
}
