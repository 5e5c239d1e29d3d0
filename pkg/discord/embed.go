package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

const (
	embedColor = 0x5865F2

	// Discord caps an embed at 25 fields, names at 256 and values at 1024.
	maxFields        = 25
	maxFieldName     = 256
	maxFieldValue    = 1024
	descriptionLimit = 300
)

// BuildEventsEmbed lists events as one embed field each. total is the number
// of stored events in lang and only feeds the footer.
func BuildEventsEmbed(t output.T, lang domain.Language, events []entities.Event, total int64) *discordgo.MessageEmbed {
	l := lang.String()
	embed := &discordgo.MessageEmbed{
		Title: "📅 " + t.T(l, "events.title", nil),
		Color: embedColor,
	}
	if len(events) == 0 {
		embed.Description = t.T(l, "events.empty", nil)
		return embed
	}

	if len(events) > maxFields {
		events = events[:maxFields]
	}
	for _, e := range events {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  clip(e.Title, maxFieldName),
			Value: clip(eventFieldValue(t, lang, e), maxFieldValue),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: t.T(l, "events.footer", map[string]any{"Count": len(events), "Total": total}),
	}
	return embed
}

func eventFieldValue(t output.T, lang domain.Language, e entities.Event) string {
	l := lang.String()
	var b strings.Builder
	fmt.Fprintf(&b, "**%s:** %s\n", t.T(l, "events.when", nil), FormatEventDateTime(t, lang, e.EventDate, e.EventTime))
	fmt.Fprintf(&b, "**%s:** %s\n", t.T(l, "events.where", nil), e.Location)
	if e.Description != "" {
		b.WriteString(clip(e.Description, descriptionLimit))
		b.WriteString("\n")
	}
	if e.SourceURL != "" {
		fmt.Fprintf(&b, "[%s](%s)", t.T(l, "events.source", nil), e.SourceURL)
	}
	if e.AIProcessed {
		b.WriteString(" · " + t.T(l, "events.ai_badge", nil))
	}
	if e.Tags != "" {
		b.WriteString(" " + e.Tags)
	}
	return strings.TrimSpace(b.String())
}

func clip(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
