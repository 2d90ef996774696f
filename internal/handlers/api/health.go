package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"wordbubble/internal/models"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the history database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and dependency status.
type HealthHandler struct {
	db               Pinger
	retrieverBaseURL string
	version          string
	now              func() time.Time
}

// NewHealthHandler creates a new API health handler. A nil database means
// history is disabled, which does not degrade the service.
func NewHealthHandler(database Pinger, retrieverBaseURL, version string) *HealthHandler {
	return &HealthHandler{
		db:               database,
		retrieverBaseURL: retrieverBaseURL,
		version:          version,
		now:              time.Now,
	}
}

// Health returns 200 when healthy and 503 when a configured dependency is down.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:    models.HealthHealthy,
		Timestamp: h.now().UTC(),
		Version:   h.version,
		Checks: models.HealthChecks{
			Retriever: models.RetrieverCheck{
				Configured: h.retrieverBaseURL != "",
				BaseURL:    h.retrieverBaseURL,
			},
		},
	}

	if h.db != nil {
		resp.Checks.Database.Enabled = true

		ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			resp.Status = models.HealthDegraded
			resp.Checks.Database.Error = "database unavailable"
		} else {
			resp.Checks.Database.Up = true
		}
	}

	status := fiber.StatusOK
	if resp.Status != models.HealthHealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}
