package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/extract"
	"eventbot/internal/ports/output"
)

// PostInput is one post to be turned into an event in one language.
type PostInput struct {
	Group    entities.Group
	Post     entities.Post
	Language domain.Language
}

// PipelineConfig holds the presentation constants used when building records.
type PipelineConfig struct {
	Institution        string
	TranslationTimeout time.Duration
}

// Pipeline turns a single post into a canonical event record. It keeps no
// state between posts.
type Pipeline struct {
	analyzer   *Analyzer
	resolver   *extract.DateResolver
	fields     *extract.FieldExtractor
	translator output.TextTranslator
	i18n       output.T
	cfg        PipelineConfig
	metrics    output.PipelineMetrics
	logger     *slog.Logger
}

// NewPipeline wires the extraction chain. translator may be nil, in which
// case non-source languages keep the original text.
func NewPipeline(
	analyzer *Analyzer,
	resolver *extract.DateResolver,
	fields *extract.FieldExtractor,
	translator output.TextTranslator,
	i18n output.T,
	cfg PipelineConfig,
	metrics output.PipelineMetrics,
	logger *slog.Logger,
) *Pipeline {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TranslationTimeout <= 0 {
		cfg.TranslationTimeout = 20 * time.Second
	}
	return &Pipeline{
		analyzer:   analyzer,
		resolver:   resolver,
		fields:     fields,
		translator: translator,
		i18n:       i18n,
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Process extracts an event from in. It returns false when the post yields
// no record: empty text, or an event dated before the floor.
func (p *Pipeline) Process(ctx context.Context, in PostInput) (*entities.Event, bool) {
	lang := in.Language
	text := strings.TrimSpace(in.Post.Text)
	log := p.logger.With("group", in.Group.Name, "post_id", in.Post.ID, "language", lang)
	if text == "" {
		p.metrics.PostProcessed(lang.String(), output.OutcomeDropped)
		return nil, false
	}

	var (
		title, eventTime, location string
		date                       time.Time
		aiProcessed                bool
	)
	if accepted, ok := p.analyzer.Analyze(ctx, text, lang); ok {
		title, date, eventTime, location = accepted.Title, accepted.Date, accepted.Time, accepted.Location
		aiProcessed = true
	} else {
		res := p.resolver.Resolve(text)
		if res.BeforeFloor() {
			log.Debug("post dropped: stated date before floor", "date", res.Rejected[0].Format(entities.DateLayout))
			p.metrics.PostProcessed(lang.String(), output.OutcomeDropped)
			return nil, false
		}
		title = p.fields.Title(text)
		date = res.Date
		eventTime = extract.ResolveTime(text)
		location = p.fields.Location(text)
	}

	// The analyzer answers in the target language, and the placeholder is
	// rendered in it, so only post-derived text goes through translation.
	titleLocalized, locationLocalized := aiProcessed, aiProcessed && location != ""
	if strings.TrimSpace(title) == "" {
		title = p.i18n.T(lang.String(), "event.placeholder_title", map[string]any{"Institution": p.cfg.Institution})
		titleLocalized = true
	}
	if location == "" {
		location = p.fields.FallbackLocation()
	}

	if p.resolver.BelowFloor(date) {
		log.Debug("post dropped: date before floor", "date", date.Format(entities.DateLayout))
		p.metrics.PostProcessed(lang.String(), output.OutcomeDropped)
		return nil, false
	}

	fields := translatable{
		Title:             title,
		Description:       extract.CleanDescription(text, title),
		Location:          location,
		TitleLocalized:    titleLocalized,
		LocationLocalized: locationLocalized,
	}
	if lang.NeedsTranslation() && p.translator != nil {
		fields = p.translateFields(ctx, lang, fields)
	}

	event := &entities.Event{
		Title:       fields.Title,
		Description: fields.Description,
		EventDate:   entities.DateOnly(date),
		EventTime:   eventTime,
		Location:    fields.Location,
		Source:      SourceID(in.Group, lang),
		SourceURL:   SourceURL(in.Post.OwnerID, in.Group.ID, in.Post.ID),
		Tags:        p.i18n.T(lang.String(), "event.tags", nil),
		Language:    lang.String(),
		AIProcessed: aiProcessed,
	}

	outcome := output.OutcomeFallback
	if aiProcessed {
		outcome = output.OutcomeAI
	}
	p.metrics.PostProcessed(lang.String(), outcome)
	return event, true
}

// SourceID is the stable origin identity of a record: the group, suffixed
// with the language for every language but the source one.
func SourceID(group entities.Group, lang domain.Language) string {
	if lang == domain.SourceLanguage {
		return "vk_" + group.Name
	}
	return fmt.Sprintf("vk_%s_%s", group.Name, lang)
}

// SourceURL builds the permalink of a wall post. Community walls have
// negative owner ids. A zero ownerID falls back to the community groupID.
func SourceURL(ownerID, groupID, postID int64) string {
	if ownerID == 0 {
		ownerID = -groupID
	}
	if ownerID < 0 {
		return fmt.Sprintf("https://vk.com/wall-%d_%d", -ownerID, postID)
	}
	return fmt.Sprintf("https://vk.com/wall%d_%d", ownerID, postID)
}
