package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/middleware"
	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/internal/tickets"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
)

// AdminListTickets returns all tickets, optionally one user's.
func AdminListTickets(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID := r.URL.Query().Get("userId"); userID != "" {
			responses.WriteSuccess(w, svc.TicketsForUser(userID))
			return
		}
		responses.WriteSuccess(w, svc.ListTickets())
	}
}

// MyTickets returns the authenticated user's tickets.
func MyTickets(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.TicketsForUser(middleware.UserIDFromContext(r.Context())))
	}
}

type createTicketRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	UserID      string `json:"userId" validate:"omitempty"`
}

// CreateTicket opens a ticket. Clients open their own; admins may open
// on behalf of a user via the userId field.
func CreateTicket(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTicketRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if req.UserID != "" && middleware.RoleFromContext(r.Context()) == string(enums.UserRoleAdmin) {
			userID = req.UserID
		}

		priority, _ := enums.ParseTicketPriority(req.Priority)
		ticket, err := svc.CreateTicket(r.Context(), userID, req.Title, req.Description, priority)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

type ticketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in-progress closed"`
}

// AdminSetTicketStatus moves a ticket through its states.
func AdminSetTicketStatus(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := chi.URLParam(r, "ticketID")
		var req ticketStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, _ := enums.ParseTicketStatus(req.Status)
		ok, err := svc.SetStatus(r.Context(), ticketID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": req.Status})
	}
}

type logHoursRequest struct {
	Hours float64 `json:"hours" validate:"required,gt=0"`
}

// AdminLogTicketHours accrues support time and debits the license.
func AdminLogTicketHours(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID := chi.URLParam(r, "ticketID")
		var req logHoursRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := svc.LogHours(r.Context(), ticketID, req.Hours)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged"})
	}
}
