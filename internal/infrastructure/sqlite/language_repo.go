package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

var _ output.LanguageRepository = (*LanguageRepository)(nil)

type LanguageRepository struct {
	store *Store
}

func NewLanguageRepository(store *Store) *LanguageRepository {
	return &LanguageRepository{store: store}
}

func (r *LanguageRepository) GetLanguage(ctx context.Context, userID string) (string, error) {
	var lang string
	err := r.store.db.QueryRowContext(ctx,
		"SELECT language FROM user_languages WHERE user_id = ?", userID,
	).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user language: %w", err)
	}
	return lang, nil
}

func (r *LanguageRepository) SetLanguage(ctx context.Context, userID, language string) error {
	_, err := r.store.db.ExecContext(ctx, `
INSERT INTO user_languages (user_id, language, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id) DO UPDATE SET language = excluded.language, updated_at = CURRENT_TIMESTAMP`,
		userID, language)
	if err != nil {
		return fmt.Errorf("set user language: %w", err)
	}
	return nil
}
