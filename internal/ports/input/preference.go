package input

import (
	"context"

	"eventbot/internal/domain"
)

type PreferenceUseCase interface {
	Language(ctx context.Context, userID string) domain.Language
	SetLanguage(ctx context.Context, userID, raw string) (domain.Language, error)
}
