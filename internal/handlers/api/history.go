package api

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"wordbubble/internal/db"
	"wordbubble/internal/models"
	"wordbubble/internal/validation"
)

// HistoryStore reads recorded analyses.
type HistoryStore interface {
	ListAnalyses(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*models.Analysis, error)
}

// HistoryHandler serves recorded analyses via JSON API.
type HistoryHandler struct {
	store HistoryStore
}

// NewHistoryHandler creates a new history handler. A nil store answers 503.
func NewHistoryHandler(store HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List returns recent analyses, optionally filtered by topic and source.
func (h *HistoryHandler) List(c fiber.Ctx) error {
	if h.store == nil {
		return historyDisabled(c)
	}

	filter := models.AnalysisFilter{
		Topic:  validation.NormalizeTopic(c.Query("topic")),
		Source: c.Query("source"),
	}

	if filter.Source != "" && !models.IsValidSource(filter.Source) {
		return jsonError(c, fiber.StatusBadRequest, "source must be retrieved or fallback")
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return jsonError(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	analyses, err := h.store.ListAnalyses(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch analyses")
	}

	return jsonSuccess(c, models.AnalysisListResponse{
		Analyses: analyses,
		Count:    len(analyses),
	})
}

// Get returns a single analysis by ID.
func (h *HistoryHandler) Get(c fiber.Ctx) error {
	if h.store == nil {
		return historyDisabled(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid analysis id")
	}

	analysis, err := h.store.GetAnalysis(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			return jsonError(c, fiber.StatusNotFound, "analysis not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch analysis")
	}

	return jsonSuccess(c, analysis)
}
