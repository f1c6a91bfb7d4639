package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/internal/lifecycle"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type usersLister interface {
	List() []models.User
	Delete(ctx context.Context, id string) (bool, error)
}

type licensesLister interface {
	List() []models.License
	ByUser(userID string) []models.License
	FindByID(id string) (models.License, bool)
}

// AdminListUsers returns every registered user.
func AdminListUsers(users usersLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newUserViews(users.List()))
	}
}

type createClientRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FarmName       string `json:"farmName" validate:"required"`
	PlanType       string `json:"planType" validate:"required,oneof=trial basic premium"`
	DurationMonths int    `json:"durationMonths" validate:"omitempty,min=1"`
}

// AdminCreateClient registers a trial or paid client plus the matching
// license.
func AdminCreateClient(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClientRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, _ := enums.ParsePlanType(req.PlanType)
		var (
			user models.User
			err  error
		)
		if plan == enums.PlanTypeTrial {
			user, err = svc.CreateTrialUser(r.Context(), req.Name, req.Email, req.Password, req.FarmName)
		} else {
			months := req.DurationMonths
			if months == 0 {
				months = 3
			}
			user, err = svc.CreatePaidUser(r.Context(), req.Name, req.Email, req.Password, req.FarmName, plan, months)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newUserView(user))
	}
}

type createFieldWorkerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FarmID   string `json:"farmId" validate:"required"`
	FarmName string `json:"farmName" validate:"required"`
	WorkerID string `json:"workerId" validate:"required"`
}

// AdminCreateFieldWorker registers a login for an on-site worker.
func AdminCreateFieldWorker(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFieldWorkerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.CreateFieldWorkerUser(r.Context(), req.Name, req.Email, req.Password, req.FarmID, req.FarmName, req.WorkerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newUserView(user))
	}
}

// AdminDeleteUser removes a user record outright. Suspension is the
// usual path; deletion exists for records created by mistake.
func AdminDeleteUser(users usersLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := users.Delete(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminSuspendUser suspends a user and cancels their active license.
func AdminSuspendUser(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		ok, err := svc.SuspendUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "suspended"})
	}
}

type reactivateRequest struct {
	Months int `json:"months" validate:"omitempty,min=1"`
}

// AdminReactivateUser restores a user and renews or creates a license.
func AdminReactivateUser(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		var req reactivateRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &req); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		ok, err := svc.ReactivateUser(r.Context(), userID, req.Months)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "active"})
	}
}

type extendLicenseRequest struct {
	Months int `json:"months" validate:"required,min=1"`
}

// AdminExtendLicense pushes out the user's active license end date.
func AdminExtendLicense(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		var req extendLicenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := svc.ExtendUserLicense(r.Context(), userID, req.Months)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no active license to extend"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "extended"})
	}
}

// AdminListLicenses returns every license, optionally one user's.
func AdminListLicenses(licenses licensesLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID := r.URL.Query().Get("userId"); userID != "" {
			responses.WriteSuccess(w, licenses.ByUser(userID))
			return
		}
		responses.WriteSuccess(w, licenses.List())
	}
}

// AdminGetLicense returns one license record.
func AdminGetLicense(licenses licensesLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		license, ok := licenses.FindByID(chi.URLParam(r, "licenseID"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "license not found"))
			return
		}
		responses.WriteSuccess(w, license)
	}
}

// AdminLicenseStatus reports validity and remaining days for a user.
func AdminLicenseStatus(svc lifecycle.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		responses.WriteSuccess(w, map[string]any{
			"hasValidLicense": svc.HasValidLicense(userID),
			"remainingDays":   svc.RemainingDays(userID),
		})
	}
}
