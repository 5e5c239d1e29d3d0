package application

import (
	"context"
	"log/slog"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

// DedupStore persists candidate records that are new for their
// (source, event_date, language) key.
type DedupStore struct {
	repo    output.EventRepository
	metrics output.PipelineMetrics
	logger  *slog.Logger
}

func NewDedupStore(repo output.EventRepository, metrics output.PipelineMetrics, logger *slog.Logger) *DedupStore {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DedupStore{repo: repo, metrics: metrics, logger: logger}
}

// Save inserts events in order and returns how many were new. A repository
// failure reports 0 for the whole batch; rows written before it are kept.
func (d *DedupStore) Save(ctx context.Context, events []*entities.Event) int {
	saved := 0
	for i, e := range events {
		inserted, err := d.repo.InsertIfAbsent(ctx, e)
		if err != nil {
			d.logger.Error("❌ save batch failed",
				"index", i,
				"batch_size", len(events),
				"source", e.Source,
				"event_date", e.DateISO(),
				"error", err)
			return 0
		}
		if inserted {
			saved++
			d.metrics.EventsSaved(e.Language, 1)
		}
	}
	return saved
}
