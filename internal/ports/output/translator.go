package output

import (
	"context"

	"eventbot/internal/domain"
)

// TextTranslator translates source-language text into target.
type TextTranslator interface {
	Translate(ctx context.Context, text string, target domain.Language) (string, error)
}

// Cache is a string key-value store. Misses and backend failures both
// report ok == false.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key, value string)
}
