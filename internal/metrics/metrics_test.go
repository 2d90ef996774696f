package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"wordbubble/internal/keywords"
	"wordbubble/internal/models"
)

type fakeStore struct {
	mu       sync.Mutex
	lookups  []models.TopicLookup
	recorded []*models.Analysis
	topics   []string
	err      error
}

func (f *fakeStore) GetTopTopicLookups(_ context.Context, limit int) ([]models.TopicLookup, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.lookups) > limit {
		return f.lookups[:limit], nil
	}
	return f.lookups, nil
}

func (f *fakeStore) RecordAnalysis(_ context.Context, a *models.Analysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, a)
	return f.err
}

func (f *fakeStore) IncrementTopicLookup(_ context.Context, topic, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic+"/"+source)
	return f.err
}

func TestTopicCollector(t *testing.T) {
	store := &fakeStore{lookups: []models.TopicLookup{
		{Topic: "go", Source: models.SourceRetrieved, Count: 7},
		{Topic: "rust", Source: models.SourceFallback, Count: 2},
	}}

	expected := `
# HELP wordbubble_topic_lookups_total Total analyses per topic by source
# TYPE wordbubble_topic_lookups_total counter
wordbubble_topic_lookups_total{source="fallback",topic="rust"} 2
wordbubble_topic_lookups_total{source="retrieved",topic="go"} 7
`
	if err := testutil.CollectAndCompare(NewTopicCollector(store), strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected collector output: %v", err)
	}
}

func TestTopicCollectorStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	if n := testutil.CollectAndCount(NewTopicCollector(store)); n != 0 {
		t.Errorf("collected %d metrics on store error, want 0", n)
	}
}

func TestRecorderPersists(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store)

	r.Record(keywords.Analysis{
		Topic:    "Go",
		Source:   keywords.SourceRetrieved,
		Tokens:   4,
		Keywords: []keywords.Keyword{{Text: "goroutine", Size: 10}},
	})
	r.Wait()

	if len(store.recorded) != 1 {
		t.Fatalf("recorded %d analyses, want 1", len(store.recorded))
	}
	if got := store.recorded[0]; got.Topic != "Go" || got.KeywordCount != 1 || got.Source != models.SourceRetrieved {
		t.Errorf("recorded = %+v", got)
	}
	if len(store.topics) != 1 || store.topics[0] != "Go/retrieved" {
		t.Errorf("topic lookups = %q", store.topics)
	}
}

func TestRecordAnalysisCounters(t *testing.T) {
	before := testutil.ToFloat64(analysesTotal.WithLabelValues("fallback"))

	RecordAnalysis(keywords.Analysis{Topic: "x", Source: keywords.SourceFallback}, 20*time.Millisecond)
	Flush()

	if got := testutil.ToFloat64(analysesTotal.WithLabelValues("fallback")); got != before+1 {
		t.Errorf("wordbubble_analyses_total{source=fallback} = %v, want %v", got, before+1)
	}
}
