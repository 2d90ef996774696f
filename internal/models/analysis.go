package models

import (
	"time"

	"github.com/google/uuid"

	"wordbubble/internal/keywords"
)

// Analysis source constants
const (
	SourceRetrieved = string(keywords.SourceRetrieved)
	SourceFallback  = string(keywords.SourceFallback)
)

// History list limits.
const (
	DefaultAnalysisLimit = 20
	MaxAnalysisLimit     = 100
)

// Analysis is a recorded scoring run for a topic.
type Analysis struct {
	ID           uuid.UUID          `json:"id"`
	Topic        string             `json:"topic"`
	Source       string             `json:"source"`
	Keywords     []keywords.Keyword `json:"keywords"`
	KeywordCount int                `json:"keyword_count"`
	TokenCount   int                `json:"token_count"`
	CreatedAt    time.Time          `json:"created_at"`
}

// NewAnalysis converts a scorer result into a record ready to insert.
func NewAnalysis(a keywords.Analysis) *Analysis {
	kws := a.Keywords
	if kws == nil {
		kws = []keywords.Keyword{}
	}
	return &Analysis{
		Topic:        a.Topic,
		Source:       string(a.Source),
		Keywords:     kws,
		KeywordCount: len(kws),
		TokenCount:   a.Tokens,
	}
}

// AnalysisFilter narrows a history listing. Empty fields match everything.
type AnalysisFilter struct {
	Topic  string // case-insensitive substring
	Source string
	Limit  int
}

// IsValidSource reports whether s names an analysis source.
func IsValidSource(s string) bool {
	return s == SourceRetrieved || s == SourceFallback
}

// ClampLimit applies the default and maximum list sizes.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultAnalysisLimit
	}
	if limit > MaxAnalysisLimit {
		return MaxAnalysisLimit
	}
	return limit
}
