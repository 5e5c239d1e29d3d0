package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"eventbot/internal/ports/output"
)

const (
	defaultYandexURL   = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	defaultYandexModel = "yandexgpt-lite"
)

var _ output.Completer = (*Yandex)(nil)

type YandexConfig struct {
	APIKey   string
	FolderID string
	Model    string
	BaseURL  string
}

// Yandex calls the YandexGPT foundation models completion endpoint.
type Yandex struct {
	cfg    YandexConfig
	client *http.Client
	logger *slog.Logger
}

func NewYandex(cfg YandexConfig, client *http.Client, logger *slog.Logger) *Yandex {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultYandexURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultYandexModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Yandex{cfg: cfg, client: client, logger: logger}
}

func (y *Yandex) Name() string { return ProviderYandex }

type yandexMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type yandexRequest struct {
	ModelURI          string          `json:"modelUri"`
	CompletionOptions yandexOptions   `json:"completionOptions"`
	Messages          []yandexMessage `json:"messages"`
}

type yandexOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   string  `json:"maxTokens"`
}

func (y *Yandex) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(yandexRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", y.cfg.FolderID, y.cfg.Model),
		CompletionOptions: yandexOptions{
			Temperature: 0.1,
			MaxTokens:   "1000",
		},
		Messages: []yandexMessage{
			{Role: "system", Text: system},
			{Role: "user", Text: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode yandex request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build yandex request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+y.cfg.APIKey)
	req.Header.Set("x-folder-id", y.cfg.FolderID)

	start := time.Now()
	resp, err := y.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("yandex completion: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read yandex response: %w", err)
	}
	y.logger.Debug("yandex completion done", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandex completion: status %d: %s", resp.StatusCode, gjson.GetBytes(raw, "error.message").String())
	}
	text := gjson.GetBytes(raw, "result.alternatives.0.message.text")
	if !text.Exists() || text.String() == "" {
		return "", fmt.Errorf("yandex completion: empty answer")
	}
	return text.String(), nil
}
