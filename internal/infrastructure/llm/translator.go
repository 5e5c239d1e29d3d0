package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

var _ output.TextTranslator = (*Translator)(nil)

// Translator translates Russian event fields with a completion backend.
// Results are memoized in cache when one is given.
type Translator struct {
	completer output.Completer
	cache     output.Cache
	logger    *slog.Logger
}

func NewTranslator(completer output.Completer, cache output.Cache, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{completer: completer, cache: cache, logger: logger}
}

func (t *Translator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	if target == domain.SourceLanguage || strings.TrimSpace(text) == "" {
		return text, nil
	}

	key := cacheKey(text, target)
	if t.cache != nil {
		if hit, ok := t.cache.Get(ctx, key); ok {
			return hit, nil
		}
	}

	system := fmt.Sprintf(
		"Translate the user's text from Russian to %s. "+
			"Keep names, numbers, dates and room numbers as they are. "+
			"Reply with the translation only.", languageName(target))
	out, err := t.completer.Complete(ctx, system, text)
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("translate to %s: empty answer", target)
	}

	if t.cache != nil {
		t.cache.Put(ctx, key, out)
	}
	return out, nil
}

func cacheKey(text string, target domain.Language) string {
	sum := sha256.Sum256([]byte(text))
	return "tr:" + target.String() + ":" + hex.EncodeToString(sum[:])
}

func languageName(l domain.Language) string {
	switch l {
	case domain.English:
		return "English"
	case domain.Russian:
		return "Russian"
	}
	return l.String()
}
