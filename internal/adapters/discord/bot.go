package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
	logger  *slog.Logger
}

// NewBot creates the session and routes interactions to handler. An empty
// guildID registers commands globally.
func NewBot(token, guildID string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	bot := &Bot{
		session: s,
		handler: handler,
		guildID: guildID,
		logger:  logger,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case commandEvents:
		b.handler.HandleEvents(s, i)
	case commandLanguage:
		b.handler.HandleLanguage(s, i)
	case commandParse:
		b.handler.HandleParse(s, i)
	}
}

// Run serves interactions until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	cmds := b.handler.Commands()
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, cmds); err != nil {
		b.logger.Warn("⚠️ command registration failed", "error", err)
	}

	b.logger.Info("🤖 bot online", "user", b.session.State.User.Username, "commands", len(cmds))
	<-ctx.Done()
	return nil
}
