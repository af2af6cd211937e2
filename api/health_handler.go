package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	store       Store
	startupTime time.Time
}

func newHealthHandler(store Store, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		store:       store,
		startupTime: startupTime,
	}
}

// HealthResponse reports whether the service and its database are up
type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	StartupTime time.Time `json:"startupTime"`
	Uptime      string    `json:"uptime"`
}

// getHealth
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:      "ok",
			Database:    "ok",
			StartupTime: h.startupTime,
			Uptime:      time.Since(h.startupTime).Round(time.Second).String(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			response.Status = "degraded"
			response.Database = "unavailable"
			h.responder.WriteJSONWithStatus(w, http.StatusServiceUnavailable, response)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}
