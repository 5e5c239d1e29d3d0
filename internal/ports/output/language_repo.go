package output

import "context"

type LanguageRepository interface {
	// GetLanguage returns domain.ErrPreferenceNotFound when the viewer never
	// picked a language.
	GetLanguage(ctx context.Context, userID string) (string, error)
	SetLanguage(ctx context.Context, userID, language string) error
}
