package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

var _ output.LanguageRepository = (*LanguageRepository)(nil)

type LanguageRepository struct {
	q *Queries
}

func NewLanguageRepository(q *Queries) *LanguageRepository {
	return &LanguageRepository{q: q}
}

func (r *LanguageRepository) GetLanguage(ctx context.Context, userID string) (string, error) {
	lang, err := r.q.GetUserLanguage(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user language: %w", err)
	}
	return lang, nil
}

func (r *LanguageRepository) SetLanguage(ctx context.Context, userID, language string) error {
	if err := r.q.UpsertUserLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("set user language: %w", err)
	}
	return nil
}
