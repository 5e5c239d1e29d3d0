package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx runs the queries inside tx.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

type eventRow struct {
	ID          int64
	Title       string
	Description string
	EventDate   pgtype.Date
	EventTime   string
	Location    string
	Source      string
	SourceUrl   string
	Tags        string
	Language    string
	AiProcessed bool
	CreatedAt   pgtype.Timestamptz
}

const insertEventIfAbsent = `
INSERT INTO events (title, description, event_date, event_time, location, source, source_url, tags, language, ai_processed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (source, event_date, language) DO NOTHING
RETURNING id, created_at`

type insertEventParams struct {
	Title       string
	Description string
	EventDate   pgtype.Date
	EventTime   string
	Location    string
	Source      string
	SourceUrl   string
	Tags        string
	Language    string
	AiProcessed bool
}

type insertEventRow struct {
	ID        int64
	CreatedAt pgtype.Timestamptz
}

// InsertEventIfAbsent returns pgx.ErrNoRows when the key already exists.
func (q *Queries) InsertEventIfAbsent(ctx context.Context, arg insertEventParams) (insertEventRow, error) {
	row := q.db.QueryRow(ctx, insertEventIfAbsent,
		arg.Title,
		arg.Description,
		arg.EventDate,
		arg.EventTime,
		arg.Location,
		arg.Source,
		arg.SourceUrl,
		arg.Tags,
		arg.Language,
		arg.AiProcessed,
	)
	var i insertEventRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const listUpcomingEvents = `
SELECT id, title, description, event_date, event_time, location, source, source_url, tags, language, ai_processed, created_at
FROM events
WHERE language = $1 AND event_date >= $2
ORDER BY event_date, event_time, id
LIMIT $3`

type listUpcomingParams struct {
	Language string
	From     pgtype.Date
	Limit    int32
}

func (q *Queries) ListUpcomingEvents(ctx context.Context, arg listUpcomingParams) ([]eventRow, error) {
	rows, err := q.db.Query(ctx, listUpcomingEvents, arg.Language, arg.From, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []eventRow
	for rows.Next() {
		var i eventRow
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.EventDate,
			&i.EventTime,
			&i.Location,
			&i.Source,
			&i.SourceUrl,
			&i.Tags,
			&i.Language,
			&i.AiProcessed,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countEventsByLanguage = `SELECT count(*) FROM events WHERE language = $1`

func (q *Queries) CountEventsByLanguage(ctx context.Context, language string) (int64, error) {
	row := q.db.QueryRow(ctx, countEventsByLanguage, language)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getUserLanguage = `SELECT language FROM user_languages WHERE user_id = $1`

func (q *Queries) GetUserLanguage(ctx context.Context, userID string) (string, error) {
	row := q.db.QueryRow(ctx, getUserLanguage, userID)
	var language string
	err := row.Scan(&language)
	return language, err
}

const upsertUserLanguage = `
INSERT INTO user_languages (user_id, language, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET language = EXCLUDED.language, updated_at = now()`

func (q *Queries) UpsertUserLanguage(ctx context.Context, userID, language string) error {
	_, err := q.db.Exec(ctx, upsertUserLanguage, userID, language)
	return err
}
