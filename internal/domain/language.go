package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language partitions persisted events and viewer preferences.
type Language string

const (
	Russian Language = "ru"
	English Language = "en"
)

// SourceLanguage is the language posts are written in.
const SourceLanguage = Russian

// SupportedLanguages lists every language an event may be stored under.
var SupportedLanguages = []Language{Russian, English}

func (l Language) String() string { return string(l) }

// NeedsTranslation reports whether content must be translated from the
// source language before being stored under l.
func (l Language) NeedsTranslation() bool { return l != SourceLanguage }

// ParseLanguage accepts BCP 47 tags ("en-US", "ru_RU", "EN") and returns the
// matching supported language.
func ParseLanguage(raw string) (Language, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedLanguage)
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	base, _ := tag.Base()
	for _, l := range SupportedLanguages {
		if base.String() == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
}
