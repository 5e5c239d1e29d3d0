package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/extract"
	"eventbot/internal/ports/output"
)

const maxAnalysisRunes = 3000

// Accepted is an AI candidate that passed validation.
type Accepted struct {
	Title    string
	Date     time.Time
	Time     string
	Location string
}

// Analyzer asks an LLM for a structured event and validates the answer.
// Every failure is reported as "no result".
type Analyzer struct {
	completer output.Completer
	resolver  *extract.DateResolver
	timeout   time.Duration
	metrics   output.PipelineMetrics
	logger    *slog.Logger
}

// NewAnalyzer builds an Analyzer. A nil completer disables AI analysis.
func NewAnalyzer(
	completer output.Completer,
	resolver *extract.DateResolver,
	timeout time.Duration,
	metrics output.PipelineMetrics,
	logger *slog.Logger,
) *Analyzer {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		completer: completer,
		resolver:  resolver,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// Analyze returns a usable candidate for text, or false.
func (a *Analyzer) Analyze(ctx context.Context, text string, lang domain.Language) (Accepted, bool) {
	if a.completer == nil {
		return Accepted{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.completer.Complete(callCtx, systemPrompt(lang), userPrompt(capRunes(text, maxAnalysisRunes), lang))
	if err != nil {
		a.metrics.AIRequest("error")
		a.logger.Warn("ai analysis failed", "provider", a.completer.Name(), "language", lang, "error", err)
		return Accepted{}, false
	}

	candidate, err := ParseCandidate(raw)
	if err != nil {
		a.metrics.AIRequest("malformed")
		a.logger.Debug("ai answer is not a candidate", "language", lang, "error", err)
		return Accepted{}, false
	}

	accepted, err := a.validate(candidate, lang)
	if err != nil {
		a.metrics.AIRequest("rejected")
		a.logger.Debug("ai candidate rejected", "language", lang, "error", err)
		return Accepted{}, false
	}

	a.metrics.AIRequest("accepted")
	return accepted, true
}

func (a *Analyzer) validate(c entities.Candidate, lang domain.Language) (Accepted, error) {
	if !c.Complete() {
		return Accepted{}, fmt.Errorf("%w: missing keys", domain.ErrNoUsableCandidate)
	}
	date, err := extract.ParseLocalized(lang, *c.Date)
	if err != nil {
		return Accepted{}, fmt.Errorf("%w: %v", domain.ErrNoUsableCandidate, err)
	}
	if a.resolver.BelowFloor(date) {
		return Accepted{}, fmt.Errorf("%w: %s", domain.ErrEventBeforeFloor, date.Format(entities.DateLayout))
	}
	eventTime, ok := extract.NormalizeTime(*c.Time)
	if !ok {
		eventTime = entities.DefaultEventTime
	}
	return Accepted{
		Title:    strings.TrimSpace(*c.Title),
		Date:     date,
		Time:     eventTime,
		Location: strings.TrimSpace(*c.Location),
	}, nil
}

// ParseCandidate decodes an LLM answer that holds a JSON object, optionally
// wrapped in a ```json fence.
func ParseCandidate(raw string) (entities.Candidate, error) {
	var c entities.Candidate
	if err := json.Unmarshal([]byte(stripFences(raw)), &c); err != nil {
		return entities.Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}
	return c, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func capRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func systemPrompt(lang domain.Language) string {
	if lang == domain.English {
		return "You extract event details from Russian social network posts. " +
			"Reply with a single JSON object and nothing else, using exactly the keys " +
			`"title", "date", "time", "location". ` +
			"date is YYYY-MM-DD, time is HH:MM in 24h format. " +
			"Write title and location in English."
	}
	return "Ты извлекаешь данные о мероприятии из постов в социальной сети. " +
		"Ответь одним JSON-объектом без пояснений с ключами " +
		`"title", "date", "time", "location". ` +
		"date в формате ДД.ММ.ГГГГ, time в формате ЧЧ:ММ (24 часа)."
}

func userPrompt(text string, lang domain.Language) string {
	if lang == domain.English {
		return "Post:\n" + text
	}
	return "Пост:\n" + text
}
