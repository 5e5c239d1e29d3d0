package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"eventbot/internal/ports/output"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

var _ output.Completer = (*Anthropic)(nil)

type Anthropic struct {
	client anthropic.Client
	model  string
	logger *slog.Logger
}

func NewAnthropic(apiKey, model, baseURL string, httpClient *http.Client, logger *slog.Logger) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Anthropic{client: anthropic.NewClient(opts...), model: model, logger: logger}
}

func (a *Anthropic) Name() string { return ProviderAnthropic }

func (a *Anthropic) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   1024,
		Temperature: anthropic.Float(0.1),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}
	a.logger.Debug("anthropic completion done",
		"model", a.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"output_tokens", message.Usage.OutputTokens)

	if len(message.Content) == 0 || message.Content[0].Text == "" {
		return "", fmt.Errorf("anthropic completion: empty answer")
	}
	return message.Content[0].Text, nil
}
