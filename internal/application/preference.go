package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventbot/internal/domain"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.PreferenceUseCase = (*PreferenceService)(nil)

type PreferenceService struct {
	repo     output.LanguageRepository
	fallback domain.Language
	logger   *slog.Logger
}

func NewPreferenceService(repo output.LanguageRepository, fallback domain.Language, logger *slog.Logger) *PreferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceService{repo: repo, fallback: fallback, logger: logger}
}

// Language returns the viewer's language, or the default one when unset or
// unreadable.
func (s *PreferenceService) Language(ctx context.Context, userID string) domain.Language {
	raw, err := s.repo.GetLanguage(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrPreferenceNotFound) {
			s.logger.Warn("read language preference", "user_id", userID, "error", err)
		}
		return s.fallback
	}
	lang, err := domain.ParseLanguage(raw)
	if err != nil {
		return s.fallback
	}
	return lang
}

func (s *PreferenceService) SetLanguage(ctx context.Context, userID, raw string) (domain.Language, error) {
	lang, err := domain.ParseLanguage(raw)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetLanguage(ctx, userID, lang.String()); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	return lang, nil
}
