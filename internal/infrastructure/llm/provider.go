// Package llm holds the chat-completion backends used for event analysis
// and field translation.
package llm

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventbot/internal/ports/output"
)

const (
	ProviderYandex    = "yandex"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config selects and configures a completion backend.
type Config struct {
	Provider string
	APIKey   string
	FolderID string
	Model    string
	BaseURL  string
}

// NewCompleter builds the configured backend. It returns a nil Completer
// for ProviderNone, which disables AI analysis and translation.
func NewCompleter(cfg Config, logger *slog.Logger) (output.Completer, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderYandex:
		return NewYandex(YandexConfig{
			APIKey:   cfg.APIKey,
			FolderID: cfg.FolderID,
			Model:    cfg.Model,
			BaseURL:  cfg.BaseURL,
		}, client, logger), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, client, logger), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model, cfg.BaseURL, client, logger), nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
