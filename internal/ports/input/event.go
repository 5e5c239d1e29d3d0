package input

import (
	"context"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type EventUseCase interface {
	ListEvents(ctx context.Context, language domain.Language, limit int) ([]entities.Event, error)
	CountEvents(ctx context.Context, language domain.Language) (int64, error)
	// ParseAll runs one scan over every configured group. It returns
	// domain.ErrParseInProgress while another run is active.
	ParseAll(ctx context.Context) (entities.ScanReport, error)
}
