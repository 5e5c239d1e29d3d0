package output

import (
	"context"
	"time"

	"eventbot/internal/domain/entities"
)

type EventRepository interface {
	// InsertIfAbsent stores event unless a row with the same
	// (source, event_date, language) exists. It reports whether a row was
	// written. The check and the write are a single atomic statement.
	InsertIfAbsent(ctx context.Context, event *entities.Event) (bool, error)
	ListUpcoming(ctx context.Context, language string, from time.Time, limit int) ([]entities.Event, error)
	CountByLanguage(ctx context.Context, language string) (int64, error)
}
