package middleware

import (
	"context"
	"net/http"

	"github.com/fazendaapp/fazenda-backend/api/responses"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// SessionReader resolves the single persisted session pointer.
type SessionReader interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Auth resolves the current session and seeds the request context with
// the actor's identity. Requests with no session get 401.
func Auth(sessions SessionReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.CurrentUser(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if user == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
				return
			}

			ctx := WithUserID(r.Context(), user.ID)
			ctx = WithActorRole(ctx, string(user.Role))
			if user.FarmID != "" {
				ctx = WithFarmID(ctx, user.FarmID)
			}
			if user.FieldWorkerID != "" {
				ctx = WithWorkerID(ctx, user.FieldWorkerID)
			}
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
				ctx = logg.WithActorRole(ctx, string(user.Role))
				if user.FarmID != "" {
					ctx = logg.WithFarmID(ctx, user.FarmID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
