package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	pkgdiscord "eventbot/pkg/discord"
)

const (
	commandEvents   = "events"
	commandLanguage = "language"
	commandParse    = "parse"

	optionLimit    = "limit"
	optionLanguage = "language"
)

// Commands returns the slash commands, described in English with Russian
// localizations.
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	en, ru := domain.English.String(), domain.Russian.String()
	desc := func(key string) (string, *map[discordgo.Locale]string) {
		return h.i18n.T(en, key, nil), &map[discordgo.Locale]string{discordgo.Russian: h.i18n.T(ru, key, nil)}
	}
	optDesc := func(key string) (string, map[discordgo.Locale]string) {
		return h.i18n.T(en, key, nil), map[discordgo.Locale]string{discordgo.Russian: h.i18n.T(ru, key, nil)}
	}

	eventsDesc, eventsLoc := desc("command.events.description")
	limitDesc, limitLoc := optDesc("command.events.limit")
	langDesc, langLoc := desc("command.language.description")
	langOptDesc, langOptLoc := optDesc("command.language.option")
	parseDesc, parseLoc := desc("command.parse.description")

	minLimit := 1.0
	return []*discordgo.ApplicationCommand{
		{
			Name:                     commandEvents,
			Description:              eventsDesc,
			DescriptionLocalizations: eventsLoc,
			Options: []*discordgo.ApplicationCommandOption{{
				Type:                     discordgo.ApplicationCommandOptionInteger,
				Name:                     optionLimit,
				Description:              limitDesc,
				DescriptionLocalizations: limitLoc,
				MinValue:                 &minLimit,
				MaxValue:                 maxEventsShown,
			}},
		},
		{
			Name:                     commandLanguage,
			Description:              langDesc,
			DescriptionLocalizations: langLoc,
			Options: []*discordgo.ApplicationCommandOption{{
				Type:                     discordgo.ApplicationCommandOptionString,
				Name:                     optionLanguage,
				Description:              langOptDesc,
				DescriptionLocalizations: langOptLoc,
				Required:                 true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Русский", Value: ru},
					{Name: "English", Value: en},
				},
			}},
		},
		{
			Name:                     commandParse,
			Description:              parseDesc,
			DescriptionLocalizations: parseLoc,
		},
	}
}

func (h *Handler) HandleEvents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)

	var limit int
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == optionLimit {
			limit = int(opt.IntValue())
		}
	}

	embed, lang, err := h.eventsEmbed(ctx, userID, limit)
	if err != nil {
		h.logError("list events", userID, err)
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.i18n, lang, err))
		return
	}
	respondEmbed(s, i.Interaction, embed)
}

func (h *Handler) HandleLanguage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var raw string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == optionLanguage {
			raw = opt.StringValue()
		}
	}
	respondEphemeral(s, i.Interaction, h.languageReply(context.Background(), interactionUserID(i), raw))
}

func (h *Handler) HandleParse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)

	if err := h.authorizeParse(userID); err != nil {
		h.logError("manual parse", userID, err)
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.i18n, h.prefs.Language(ctx, userID), err))
		return
	}

	if err := deferEphemeral(s, i.Interaction); err != nil {
		h.logger.Error("❌ defer parse response", "error", err)
		return
	}
	editResponse(s, i.Interaction, h.parseReply(ctx, userID), h.logger)
}
