package controllers

import (
	"context"
	"net/http"

	"github.com/dcastellanos/mobilecart/api/responses"
	"github.com/dcastellanos/mobilecart/pkg/config"
	pkgerrors "github.com/dcastellanos/mobilecart/pkg/errors"
	"github.com/dcastellanos/mobilecart/pkg/logger"
)

// Pinger is the health-check surface a storage backend may expose.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mobilecart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mobilecart-Env", cfg.App.Env)
		if storage != nil {
			if err := storage.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
