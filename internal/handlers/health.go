package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"inmoportal/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 *sql.DB
	modelConfigured    bool
	mailConfigured     bool
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, modelConfigured, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		modelConfigured:    modelConfigured,
		mailConfigured:     mailConfigured,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// The database is the critical dependency; missing model or mail credentials
// degrade the service (the agent hands off to WhatsApp, contact emails are
// skipped) but do not make it unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	} else {
		checks["database"] = "ok"
	}

	degraded := false
	if h.modelConfigured {
		checks["model"] = "ok"
	} else {
		checks["model"] = "not_configured"
		issues = append(issues, "model_not_configured")
		degraded = true
	}

	if h.mailConfigured {
		checks["smtp"] = "ok"
	} else {
		checks["smtp"] = "not_configured"
		issues = append(issues, "smtp_not_configured")
		degraded = true
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if checks["database"] != "ok" {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else if degraded {
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
