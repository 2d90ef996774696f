package keywords

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// Scorer turns a topic into weighted keywords.
type Scorer struct {
	resources *Resources
	retriever Retriever
	topN      int
	logger    *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithTopN lowers the number of keywords returned. Non-positive values keep
// the default and values above DefaultTopN are clamped to it.
func WithTopN(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.topN = min(n, DefaultTopN)
		}
	}
}

// WithLogger sets the logger used for retrieval diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer builds a scorer over shared resources. A nil retriever means every
// call scores the topic text itself.
func NewScorer(resources *Resources, retriever Retriever, opts ...Option) (*Scorer, error) {
	if resources == nil {
		return nil, ErrNoResources
	}
	s := &Scorer{
		resources: resources,
		retriever: retriever,
		topN:      DefaultTopN,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RetrievalKey builds the lookup key for a topic: spaces become underscores.
func RetrievalKey(topic string) string {
	return strings.ReplaceAll(topic, " ", "_")
}

// Score returns the weighted keywords for topic.
func (s *Scorer) Score(ctx context.Context, topic string) ([]Keyword, error) {
	a, err := s.Analyze(ctx, topic)
	if err != nil {
		return nil, err
	}
	return a.Keywords, nil
}

// Analyze retrieves the document for topic and scores it. Retrieval failures
// are not errors: the topic itself becomes the document.
func (s *Scorer) Analyze(ctx context.Context, topic string) (Analysis, error) {
	if s == nil || s.resources == nil {
		return Analysis{}, ErrNoResources
	}

	text, source := s.document(ctx, topic)
	tokens := s.resources.pipeline(text)

	return Analysis{
		Topic:    topic,
		Source:   source,
		Tokens:   len(tokens),
		Keywords: s.rank(tokens),
	}, nil
}

// ScoreText scores text directly, without retrieval.
func (s *Scorer) ScoreText(text string) []Keyword {
	return s.rank(s.resources.pipeline(text))
}

func (s *Scorer) document(ctx context.Context, topic string) (string, Source) {
	if s.retriever == nil {
		return topic, SourceFallback
	}

	key := RetrievalKey(topic)
	text, err := s.retriever.Fetch(ctx, key)
	if err != nil {
		s.logger.Debug("retrieval failed, scoring topic text", "key", key, "error", err)
		return topic, SourceFallback
	}
	return text, SourceRetrieved
}

// rank selects the topN most frequent tokens and weights them by
// frequency × tfidf × DefaultScale, keeping frequency order.
func (s *Scorer) rank(tokens []string) []Keyword {
	result := []Keyword{}
	if len(tokens) == 0 {
		return result
	}

	counts := countTerms(tokens)
	slices.SortStableFunc(counts, func(a, b termCount) int {
		return b.count - a.count
	})
	if len(counts) > s.topN {
		counts = counts[:s.topN]
	}

	model := FitTFIDF([][]string{tokens})
	for _, tc := range counts {
		if !model.Has(tc.term) {
			continue
		}
		importance := float64(tc.count) * model.Weight(0, tc.term)
		result = append(result, Keyword{Text: tc.term, Size: importance * DefaultScale})
	}
	return result
}
