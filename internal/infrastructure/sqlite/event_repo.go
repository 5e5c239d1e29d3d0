package sqlite

import (
	"context"
	"fmt"
	"time"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const timestampLayout = "2006-01-02 15:04:05"

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) InsertIfAbsent(ctx context.Context, e *entities.Event) (bool, error) {
	res, err := r.store.db.ExecContext(ctx, `
INSERT OR IGNORE INTO events
    (title, description, event_date, event_time, location, source, source_url, tags, language, ai_processed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.DateISO(), e.EventTime, e.Location,
		e.Source, e.SourceURL, e.Tags, e.Language, e.AIProcessed)
	if err != nil {
		return false, fmt.Errorf("insert event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert event: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return true, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, language string, from time.Time, limit int) ([]entities.Event, error) {
	rows, err := r.store.db.QueryContext(ctx, `
SELECT id, title, description, event_date, event_time, location, source, source_url, tags, language, ai_processed, created_at
FROM events
WHERE language = ? AND event_date >= ?
ORDER BY event_date, event_time, id
LIMIT ?`, language, from.Format(entities.DateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	var events []entities.Event
	for rows.Next() {
		var (
			e                 entities.Event
			eventDate, create string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &eventDate, &e.EventTime, &e.Location,
			&e.Source, &e.SourceURL, &e.Tags, &e.Language, &e.AIProcessed, &create); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if e.EventDate, err = time.Parse(entities.DateLayout, eventDate); err != nil {
			return nil, fmt.Errorf("parse event_date %q: %w", eventDate, err)
		}
		e.CreatedAt, _ = time.Parse(timestampLayout, create)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) CountByLanguage(ctx context.Context, language string) (int64, error) {
	var n int64
	if err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE language = ?", language,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
