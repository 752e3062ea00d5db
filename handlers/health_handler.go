package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	db      *sql.DB
	started time.Time
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// HealthCheck godoc
// @Summary Liveness check including a database ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "available"
	httpStatus := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		logError(r, err)
		status = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	payload := map[string]string{
		"status": status,
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}
	if err := writeJSON(w, httpStatus, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
