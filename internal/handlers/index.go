package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"wordbubble/internal/config"
	"wordbubble/internal/models"
	"wordbubble/internal/validation"
)

const recentAnalysesOnIndex = 8

// IndexHandler renders the topic form and bubble chart page.
type IndexHandler struct {
	cfg    *config.Config
	recent RecentLister
}

// NewIndexHandler creates a new index handler. recent may be nil when
// history is disabled.
func NewIndexHandler(cfg *config.Config, recent RecentLister) *IndexHandler {
	return &IndexHandler{cfg: cfg, recent: recent}
}

// Index renders the home page. A ?topic= query pre-fills the form.
func (h *IndexHandler) Index(c fiber.Ctx) error {
	data := MergeBranding(fiber.Map{
		"Topic":          validation.NormalizeTopic(c.Query("topic")),
		"MaxTopicLength": validation.MaxTopicLength,
		"HistoryEnabled": h.recent != nil,
	}, h.cfg)

	if h.recent != nil {
		recent, err := h.recent.ListAnalyses(c.Context(), models.AnalysisFilter{Limit: recentAnalysesOnIndex})
		if err != nil {
			slog.Warn("failed to load recent analyses", "error", err)
		} else {
			data["RecentAnalyses"] = recent
		}
	}

	return c.Render("index", data)
}
