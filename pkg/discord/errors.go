package discord

import (
	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

// DomainErrorMessage resolves err to a localized user-facing message via
// its domain code. Errors without a code get the generic message.
func DomainErrorMessage(t output.T, lang domain.Language, err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return t.T(lang.String(), "error."+code, nil)
	}
	return t.T(lang.String(), "error.internal", nil)
}
