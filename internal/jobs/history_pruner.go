package jobs

import (
	"context"
	"log"
	"time"
)

// AnalysisPruner deletes analyses created before a cutoff.
type AnalysisPruner interface {
	DeleteAnalysesOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryPruner periodically removes analyses older than the retention period.
type HistoryPruner struct {
	db        AnalysisPruner
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewHistoryPruner creates a new history pruner.
func NewHistoryPruner(database AnalysisPruner, interval, retention time.Duration) *HistoryPruner {
	return &HistoryPruner{
		db:        database,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// Start begins the background prune loop. It returns when ctx is done.
func (p *HistoryPruner) Start(ctx context.Context) {
	log.Printf("History pruner started (interval: %v, retention: %v)", p.interval, p.retention)

	// Run immediately on start
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("History pruner stopped")
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

// prune deletes expired analyses once and returns how many were removed.
func (p *HistoryPruner) prune(ctx context.Context) int64 {
	cutoff := p.now().Add(-p.retention)

	deleted, err := p.db.DeleteAnalysesOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("History pruner: failed to delete analyses: %v", err)
		return 0
	}

	if deleted > 0 {
		log.Printf("History pruner: deleted %d analyses older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return deleted
}
