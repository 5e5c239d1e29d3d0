package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	q *Queries
}

func NewEventRepository(q *Queries) *EventRepository {
	return &EventRepository{q: q}
}

// InsertIfAbsent relies on the (source, event_date, language) unique index,
// so concurrent callers never both insert the same key.
func (r *EventRepository) InsertIfAbsent(ctx context.Context, event *entities.Event) (bool, error) {
	row, err := r.q.InsertEventIfAbsent(ctx, eventToParams(event))
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert event: %w", err)
	}
	event.ID = row.ID
	event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return true, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, language string, from time.Time, limit int) ([]entities.Event, error) {
	rows, err := r.q.ListUpcomingEvents(ctx, listUpcomingParams{
		Language: language,
		From:     timeToPgtypeDate(from),
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	events := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, eventToDomain(row))
	}
	return events, nil
}

func (r *EventRepository) CountByLanguage(ctx context.Context, language string) (int64, error) {
	n, err := r.q.CountEventsByLanguage(ctx, language)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
