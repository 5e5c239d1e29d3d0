package entities

import "time"

// DateLayout is the canonical ISO layout of EventDate.
const DateLayout = "2006-01-02"

// DefaultEventTime is used when no time can be recovered from a post.
const DefaultEventTime = "18:00"

// Event is a canonical event record extracted from one source post in one
// language. Records are insert-only.
type Event struct {
	ID          int64
	Title       string
	Description string
	EventDate   time.Time // date only, UTC midnight
	EventTime   string    // HH:MM, 24h
	Location    string
	Source      string
	SourceURL   string
	Tags        string
	Language    string
	AIProcessed bool
	CreatedAt   time.Time
}

// DateISO returns EventDate formatted as YYYY-MM-DD.
func (e *Event) DateISO() string {
	return e.EventDate.Format(DateLayout)
}

// DateOnly truncates t to a UTC midnight value in its own calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
