package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/extract"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

const (
	defaultListLimit = 10
	maxListLimit     = 50
	defaultPostCount = 20
)

// ScanConfig lists what a parse run covers.
type ScanConfig struct {
	Groups    []entities.Group
	Languages []domain.Language
	PostCount int
}

type EventService struct {
	events   output.EventRepository
	wall     output.WallFetcher
	pipeline *Pipeline
	dedup    *DedupStore
	scan     ScanConfig
	now      extract.Clock
	metrics  output.PipelineMetrics
	logger   *slog.Logger
	running  atomic.Bool
}

func NewEventService(
	events output.EventRepository,
	wall output.WallFetcher,
	pipeline *Pipeline,
	dedup *DedupStore,
	scan ScanConfig,
	now extract.Clock,
	metrics output.PipelineMetrics,
	logger *slog.Logger,
) *EventService {
	if scan.PostCount <= 0 {
		scan.PostCount = defaultPostCount
	}
	if len(scan.Languages) == 0 {
		scan.Languages = domain.SupportedLanguages
	}
	if now == nil {
		now = extract.SystemClock
	}
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		events:   events,
		wall:     wall,
		pipeline: pipeline,
		dedup:    dedup,
		scan:     scan,
		now:      now,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListEvents returns upcoming events stored under language, soonest first.
func (s *EventService) ListEvents(ctx context.Context, language domain.Language, limit int) ([]entities.Event, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	today := entities.DateOnly(s.now())
	events, err := s.events.ListUpcoming(ctx, language.String(), today, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) CountEvents(ctx context.Context, language domain.Language) (int64, error) {
	n, err := s.events.CountByLanguage(ctx, language.String())
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// ParseAll scans every configured group in every language. A failing group
// is logged and skipped. Only one run may be active at a time.
func (s *EventService) ParseAll(ctx context.Context) (entities.ScanReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return entities.ScanReport{}, domain.ErrParseInProgress
	}
	defer s.running.Store(false)

	report := entities.ScanReport{RunID: uuid.NewString(), StartedAt: time.Now()}
	log := s.logger.With("run_id", report.RunID)
	log.Info("🔄 parse run started", "groups", len(s.scan.Groups), "languages", len(s.scan.Languages))

	for _, group := range s.scan.Groups {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("parse run %s: %w", report.RunID, err)
		}
		report.Groups++
		res, err := s.parseGroup(ctx, log, group)
		if err != nil {
			report.FailedGroups++
			s.metrics.GroupFailed(group.Name)
			log.Error("❌ group skipped", "group", group.Name, "error", err)
			continue
		}
		report.Posts += res.posts
		report.Extracted += res.extracted
		report.Saved += res.saved
	}

	report.FinishedAt = time.Now()
	log.Info("✅ parse run finished",
		"posts", report.Posts,
		"extracted", report.Extracted,
		"saved", report.Saved,
		"failed_groups", report.FailedGroups,
		"duration", report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

type groupResult struct {
	posts     int
	extracted int
	saved     int
}

// parseGroup fetches a wall once and processes it for every language
// concurrently. Batches share nothing but the repository's unique key.
func (s *EventService) parseGroup(ctx context.Context, log *slog.Logger, group entities.Group) (groupResult, error) {
	posts, err := s.wall.FetchWall(ctx, group, s.scan.PostCount)
	if err != nil {
		return groupResult{}, fmt.Errorf("fetch wall %s: %w", group.Name, err)
	}

	res := groupResult{posts: len(posts)}
	var mu sync.Mutex
	var g errgroup.Group
	for _, lang := range s.scan.Languages {
		lang := lang
		g.Go(func() error {
			batch := s.extractBatch(ctx, group, posts, lang)
			saved := s.dedup.Save(ctx, batch)

			mu.Lock()
			res.extracted += len(batch)
			res.saved += saved
			mu.Unlock()

			log.Info("group batch saved",
				"group", group.Name,
				"language", lang,
				"posts", len(posts),
				"extracted", len(batch),
				"saved", saved)
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}

// extractBatch runs the pipeline over posts sequentially, keeping post order.
func (s *EventService) extractBatch(ctx context.Context, group entities.Group, posts []entities.Post, lang domain.Language) []*entities.Event {
	batch := make([]*entities.Event, 0, len(posts))
	for _, post := range posts {
		if ctx.Err() != nil {
			break
		}
		event, ok := s.processPost(ctx, PostInput{Group: group, Post: post, Language: lang})
		if ok {
			batch = append(batch, event)
		}
	}
	return batch
}

// processPost runs the pipeline on one post. A panic from a backend drops
// that post only.
func (s *EventService) processPost(ctx context.Context, in PostInput) (event *entities.Event, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("❌ post processing panicked",
				"group", in.Group.Name,
				"post_id", in.Post.ID,
				"language", in.Language,
				"panic", r)
			s.metrics.PostProcessed(in.Language.String(), output.OutcomeDropped)
			event, ok = nil, false
		}
	}()
	return s.pipeline.Process(ctx, in)
}
