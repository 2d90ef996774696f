package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"wordbubble/internal/keywords"
	"wordbubble/internal/models"
)

// Analyzer scores a topic into keywords.
type Analyzer interface {
	Analyze(ctx context.Context, topic string) (keywords.Analysis, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RecentLister returns recent analyses for the index page.
type RecentLister interface {
	ListAnalyses(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error)
}

// jsonError writes the flat {"error": message} body used by /analyze.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
