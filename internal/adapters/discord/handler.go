package discord

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

const (
	defaultEventsShown = 5
	maxEventsShown     = 10
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	events       input.EventUseCase
	prefs        input.PreferenceUseCase
	i18n         output.T
	isAdmin      func(userID string) bool
	parseTimeout time.Duration
	logger       *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	events input.EventUseCase,
	prefs input.PreferenceUseCase,
	i18n output.T,
	isAdmin func(userID string) bool,
	logger *slog.Logger,
) *Handler {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Handler{
		events:       events,
		prefs:        prefs,
		i18n:         i18n,
		isAdmin:      isAdmin,
		parseTimeout: 10 * time.Minute,
		logger:       logger,
	}
}

// eventsEmbed lists upcoming events in the viewer's language.
func (h *Handler) eventsEmbed(ctx context.Context, userID string, limit int) (*discordgo.MessageEmbed, domain.Language, error) {
	lang := h.prefs.Language(ctx, userID)
	if limit <= 0 || limit > maxEventsShown {
		limit = defaultEventsShown
	}
	events, err := h.events.ListEvents(ctx, lang, limit)
	if err != nil {
		return nil, lang, err
	}
	total, err := h.events.CountEvents(ctx, lang)
	if err != nil {
		h.logger.Warn("count events", "language", lang, "error", err)
		total = int64(len(events))
	}
	return pkgdiscord.BuildEventsEmbed(h.i18n, lang, events, total), lang, nil
}

func (h *Handler) languageReply(ctx context.Context, userID, raw string) string {
	lang, err := h.prefs.SetLanguage(ctx, userID, raw)
	if err != nil {
		h.logError("set language", userID, err)
		return pkgdiscord.DomainErrorMessage(h.i18n, h.prefs.Language(ctx, userID), err)
	}
	return h.i18n.T(lang.String(), "language.set", nil)
}

// authorizeParse rejects non-admins before any work is deferred.
func (h *Handler) authorizeParse(userID string) error {
	if !h.isAdmin(userID) {
		return domain.ErrNotAdmin
	}
	return nil
}

func (h *Handler) parseReply(ctx context.Context, userID string) string {
	lang := h.prefs.Language(ctx, userID)
	ctx, cancel := context.WithTimeout(ctx, h.parseTimeout)
	defer cancel()

	report, err := h.events.ParseAll(ctx)
	if err != nil {
		h.logError("manual parse", userID, err)
		return pkgdiscord.DomainErrorMessage(h.i18n, lang, err)
	}
	h.logger.Info("✅ manual parse finished", "user_id", userID, "run_id", report.RunID, "saved", report.Saved)
	return h.i18n.T(lang.String(), "parse.done", map[string]any{
		"Posts":        report.Posts,
		"Extracted":    report.Extracted,
		"Saved":        report.Saved,
		"FailedGroups": report.FailedGroups,
	})
}

func (h *Handler) logError(action, userID string, err error) {
	if domain.Code(err) != "" && !errors.Is(err, domain.ErrParseInProgress) {
		h.logger.Info(action+" rejected", "user_id", userID, "error", err)
		return
	}
	h.logger.Error("❌ "+action+" failed", "user_id", userID, "error", err)
}
