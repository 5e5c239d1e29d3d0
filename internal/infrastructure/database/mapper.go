package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"eventbot/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func pgtypeDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return entities.DateOnly(d.Time)
}

func timeToPgtypeDate(t time.Time) pgtype.Date {
	if t.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: entities.DateOnly(t), Valid: true}
}

func eventToDomain(e eventRow) entities.Event {
	return entities.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   pgtypeDateToTime(e.EventDate),
		EventTime:   e.EventTime,
		Location:    e.Location,
		Source:      e.Source,
		SourceURL:   e.SourceUrl,
		Tags:        e.Tags,
		Language:    e.Language,
		AIProcessed: e.AiProcessed,
		CreatedAt:   pgtypeTimestamptzToTime(e.CreatedAt),
	}
}

func eventToParams(e *entities.Event) insertEventParams {
	return insertEventParams{
		Title:       e.Title,
		Description: e.Description,
		EventDate:   timeToPgtypeDate(e.EventDate),
		EventTime:   e.EventTime,
		Location:    e.Location,
		Source:      e.Source,
		SourceUrl:   e.SourceURL,
		Tags:        e.Tags,
		Language:    e.Language,
		AiProcessed: e.AIProcessed,
	}
}
