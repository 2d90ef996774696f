// Package keywords scores the salient words of a topic's document for
// bubble-chart visualisation.
//
// The pipeline for one call is:
//
//	retrieve -> extract text -> lowercase -> strip non-word runes ->
//	tokenize -> drop stopwords and short tokens -> count -> TF-IDF
//
// The TF-IDF model is fitted on a corpus holding only the scored document.
// With one document every idf is 1 and each row is L2-normalised, so a
// term's weight collapses to count/‖counts‖₂.
//
// Results keep the frequency-rank order of the top terms (ties broken by
// first occurrence); they are not re-sorted by size.
//
// A Scorer holds no mutable state and is safe for concurrent use by
// multiple goroutines.
package keywords

import (
	"context"
	"errors"
)

const (
	// DefaultTopN is the maximum number of keywords returned.
	DefaultTopN = 30
	// DefaultScale multiplies frequency × tfidf into a chart-friendly size.
	DefaultScale = 1000.0

	minTokenRunes = 3 // tokens of two runes or fewer are noise
)

// ErrNoResources is returned when a scorer is built without language resources.
var ErrNoResources = errors.New("keywords: language resources not loaded")

// Source tells where the scored document text came from.
type Source string

const (
	SourceRetrieved Source = "retrieved"
	SourceFallback  Source = "fallback"
)

// Keyword is a single scored token.
type Keyword struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
}

// Analysis is the full outcome of scoring one topic.
type Analysis struct {
	Topic    string
	Source   Source
	Tokens   int // filtered tokens in the document
	Keywords []Keyword
}

// Retriever fetches the document text associated with a retrieval key.
// Implementations return an error for any failure; the scorer falls back to
// the topic text in that case.
type Retriever interface {
	Fetch(ctx context.Context, key string) (string, error)
}
