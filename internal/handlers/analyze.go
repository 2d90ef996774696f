package handlers

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"wordbubble/internal/keywords"
	"wordbubble/internal/metrics"
	"wordbubble/internal/middleware"
	"wordbubble/internal/validation"
)

// Error messages returned by POST /analyze.
const (
	MsgInvalidBody   = "Invalid request body"
	MsgAnalyzeFailed = "Failed to analyze keywords"
)

// AnalyzeHandler serves keyword scoring requests.
type AnalyzeHandler struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer Analyzer, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeHandler{analyzer: analyzer, logger: logger.With("component", "analyze")}
}

// Analyze scores the posted topic and returns a JSON array of {text, size}.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	topic, ok := readTopic(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, MsgInvalidBody)
	}

	topic = validation.NormalizeTopic(topic)
	if valid, msg := validation.ValidateTopic(topic); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	start := time.Now()
	analysis, err := h.analyzer.Analyze(c.Context(), topic)
	if err != nil {
		h.logger.Error("analysis failed",
			"topic", topic,
			"request_id", middleware.GetRequestID(c),
			"error", err,
		)
		return jsonError(c, fiber.StatusInternalServerError, MsgAnalyzeFailed)
	}
	elapsed := time.Since(start)

	metrics.RecordAnalysis(analysis, elapsed)
	h.logger.Info("analysis complete",
		"topic", topic,
		"source", analysis.Source,
		"keywords", len(analysis.Keywords),
		"duration", elapsed,
		"request_id", middleware.GetRequestID(c),
	)

	if analysis.Keywords == nil {
		analysis.Keywords = []keywords.Keyword{}
	}
	return c.JSON(analysis.Keywords)
}

// readTopic extracts the topic from a form post or a JSON body. A missing or
// non-string topic yields "" so validation reports it as absent; only an
// unparsable JSON body is rejected here.
func readTopic(c fiber.Ctx) (string, bool) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm) {
		return c.FormValue("topic"), true
	}

	var body struct {
		Topic any `json:"topic"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return "", false
	}
	topic, _ := body.Topic.(string)
	return topic, true
}
