package application

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"eventbot/internal/domain"
)

type translatable struct {
	Title       string
	Description string
	Location    string

	// Set when the value is already written in the target language.
	TitleLocalized    bool
	LocationLocalized bool
}

// translateFields translates the display fields concurrently, skipping the
// ones already localized. A field whose translation fails keeps its original
// value; the others are unaffected.
func (p *Pipeline) translateFields(ctx context.Context, lang domain.Language, in translatable) translatable {
	out := in
	jobs := []struct {
		name string
		src  string
		dst  *string
		skip bool
	}{
		{"title", in.Title, &out.Title, in.TitleLocalized},
		{"description", in.Description, &out.Description, false},
		{"location", in.Location, &out.Location, in.LocationLocalized},
	}

	// Plain errgroup.Group: no shared cancellation between fields.
	var g errgroup.Group
	for _, job := range jobs {
		if job.skip || strings.TrimSpace(job.src) == "" {
			continue
		}
		job := job
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(ctx, p.cfg.TranslationTimeout)
			defer cancel()
			defer func() {
				if r := recover(); r != nil {
					p.metrics.TranslationFailed(job.name)
					p.logger.Error("❌ translation panicked, keeping original", "field", job.name, "language", lang, "panic", r)
				}
			}()

			translated, err := p.translator.Translate(tctx, job.src, lang)
			if err != nil || strings.TrimSpace(translated) == "" {
				p.metrics.TranslationFailed(job.name)
				p.logger.Warn("translation failed, keeping original", "field", job.name, "language", lang, "error", err)
				return nil
			}
			*job.dst = strings.TrimSpace(translated)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
