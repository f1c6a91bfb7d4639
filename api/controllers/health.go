package controllers

import (
	"net/http"

	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/pkg/config"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fazenda-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the store with a read. A missing probe key is
// fine; only transport failures mark the store unready.
func HealthReady(cfg *config.Config, store kv.Store, logg *logger.Logger) http.HandlerFunc {
	probeKey := kv.Key(cfg.Store.Namespace, "health_probe")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fazenda-Env", cfg.App.Env)
		if _, err := store.Get(r.Context(), probeKey); err != nil && !pkgerrors.Is(err, kv.ErrNotFound) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
