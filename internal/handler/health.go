package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is satisfied by the pgx pool and the sqlite store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyChecker reports whether a component has finished its startup work.
type ReadyChecker interface {
	Ready() bool
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the price cache is built and, when a database
// is configured, it answers a ping. db may be nil for the in-memory driver.
func HandleReadyz(db Pinger, prices ReadyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if prices != nil && !prices.Ready() {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: MsgPricesNotReady})
			return
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: MsgDatabaseUnavailable})
				return
			}
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}
