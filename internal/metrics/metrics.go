package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wordbubble/internal/keywords"
	"wordbubble/internal/models"
)

// topicLookupLimit bounds the label cardinality of the topic collector.
const topicLookupLimit = 100

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordbubble_analyses_total",
			Help: "Total analyses served by document source",
		},
		[]string{"source"},
	)

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordbubble_analysis_duration_seconds",
		Help:    "Time to retrieve and score a topic",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
	})

	keywordsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordbubble_keywords_returned",
		Help:    "Number of keywords returned per analysis",
		Buckets: []float64{0, 1, 5, 10, 20, 30},
	})

	topicLookupDesc = prometheus.NewDesc(
		"wordbubble_topic_lookups_total",
		"Total analyses per topic by source",
		[]string{"topic", "source"},
		nil,
	)
)

func init() {
	prometheus.MustRegister(analysesTotal, analysisDuration, keywordsReturned)
}

// LookupStore reads persisted topic lookup counts.
type LookupStore interface {
	GetTopTopicLookups(ctx context.Context, limit int) ([]models.TopicLookup, error)
}

// HistoryStore persists analyses and topic lookup counts.
type HistoryStore interface {
	LookupStore
	RecordAnalysis(ctx context.Context, a *models.Analysis) error
	IncrementTopicLookup(ctx context.Context, topic, source string) error
}

// TopicCollector is a custom Prometheus collector that reads topic lookup
// counts from the database on each scrape.
type TopicCollector struct {
	store LookupStore
	limit int
}

// NewTopicCollector creates a collector exporting the most looked-up topics.
func NewTopicCollector(store LookupStore) *TopicCollector {
	return &TopicCollector{store: store, limit: topicLookupLimit}
}

// Describe sends the metric descriptor to the channel.
func (c *TopicCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- topicLookupDesc
}

// Collect queries the database for topic lookups and emits them as counters.
func (c *TopicCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lookups, err := c.store.GetTopTopicLookups(ctx, c.limit)
	if err != nil {
		slog.Error("failed to collect topic lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			topicLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Topic,
			l.Source,
		)
	}
}

// Recorder provides async analysis recording.
type Recorder struct {
	store HistoryStore
	wg    sync.WaitGroup
}

// NewRecorder creates a recorder persisting to store.
func NewRecorder(store HistoryStore) *Recorder {
	return &Recorder{store: store}
}

// Record persists an analysis and bumps its topic counter in the background.
func (r *Recorder) Record(a keywords.Analysis) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := r.store.RecordAnalysis(ctx, models.NewAnalysis(a)); err != nil {
			slog.Error("failed to record analysis", "topic", a.Topic, "error", err)
		}
		if err := r.store.IncrementTopicLookup(ctx, a.Topic, string(a.Source)); err != nil {
			slog.Error("failed to record topic lookup", "topic", a.Topic, "source", a.Source, "error", err)
		}
	}()
}

// Wait blocks until in-flight recordings finish.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup, and only when history is enabled.
func Init(store HistoryStore) {
	recorderOnce.Do(func() {
		recorder = NewRecorder(store)
		prometheus.MustRegister(NewTopicCollector(store))
	})
}

// Flush waits for pending async recordings. Call before closing the store.
func Flush() {
	if recorder != nil {
		recorder.Wait()
	}
}

// RecordAnalysis observes an analysis and, when history is enabled,
// asynchronously persists it.
func RecordAnalysis(a keywords.Analysis, elapsed time.Duration) {
	analysesTotal.WithLabelValues(string(a.Source)).Inc()
	analysisDuration.Observe(elapsed.Seconds())
	keywordsReturned.Observe(float64(len(a.Keywords)))

	if recorder == nil {
		return
	}
	recorder.Record(a)
}
