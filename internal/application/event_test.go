package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/extract"
)

func newTestService(repo *memoryRepo, wall *fakeWall, langs []domain.Language, groups ...entities.Group) *EventService {
	var translator *fakeTranslator
	for _, l := range langs {
		if l.NeedsTranslation() {
			translator = &fakeTranslator{}
		}
	}
	pipeline := newTestPipeline(nil, translator)
	dedup := NewDedupStore(repo, nil, discardLogger())
	return NewEventService(repo, wall, pipeline, dedup,
		ScanConfig{Groups: groups, Languages: langs, PostCount: 10},
		fixedClock, nil, discardLogger())
}

func scanPosts() []entities.Post {
	return []entities.Post{
		{ID: 1, OwnerID: -123, Text: hackathonText},
		{ID: 2, OwnerID: -123, Text: "Хакатон 05.10.2025\nАудитория 301"},
		{ID: 3, OwnerID: -123, Text: "Открытая лекция о робототехнике\nПриходите все!"},
		{ID: 4, OwnerID: -123, Text: ""},
	}
}

func TestParseAllSkipsFailingGroup(t *testing.T) {
	repo := newMemoryRepo()
	broken := entities.Group{Name: "closed", ID: 999}
	wall := &fakeWall{
		posts: map[string][]entities.Post{"itmo": scanPosts()},
		fail:  map[string]bool{"closed": true},
	}
	svc := newTestService(repo, wall, []domain.Language{domain.Russian}, broken, testGroup)

	report, err := svc.ParseAll(context.Background())
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if report.RunID == "" {
		t.Error("run id must be set")
	}
	if report.Groups != 2 || report.FailedGroups != 1 {
		t.Errorf("groups = %d failed = %d, want 2 and 1", report.Groups, report.FailedGroups)
	}
	if report.Posts != 4 || report.Extracted != 2 || report.Saved != 2 {
		t.Errorf("posts=%d extracted=%d saved=%d, want 4/2/2", report.Posts, report.Extracted, report.Saved)
	}

	again, err := svc.ParseAll(context.Background())
	if err != nil {
		t.Fatalf("second ParseAll() error = %v", err)
	}
	if again.Saved != 0 {
		t.Errorf("second run saved %d, want 0", again.Saved)
	}
}

func TestParseAllPartitionsLanguages(t *testing.T) {
	repo := newMemoryRepo()
	wall := &fakeWall{posts: map[string][]entities.Post{"itmo": scanPosts()[:1]}}
	svc := newTestService(repo, wall, []domain.Language{domain.Russian, domain.English}, testGroup)

	report, err := svc.ParseAll(context.Background())
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if report.Saved != 2 {
		t.Fatalf("saved = %d, want one record per language", report.Saved)
	}

	en, err := svc.ListEvents(context.Background(), domain.English, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(en) != 1 {
		t.Fatalf("en events = %d, want 1", len(en))
	}
	if en[0].Source != "vk_itmo_en" || en[0].Language != "en" {
		t.Errorf("en record has source %q language %q", en[0].Source, en[0].Language)
	}
	if en[0].Title != "[en] Хакатон 13.11.2025" {
		t.Errorf("en title = %q", en[0].Title)
	}

	ru, _ := svc.ListEvents(context.Background(), domain.Russian, 0)
	if len(ru) != 1 || ru[0].Source != "vk_itmo" {
		t.Fatalf("ru events = %+v", ru)
	}
}

func TestParseAllRejectsConcurrentRun(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &fakeWall{}, []domain.Language{domain.Russian}, testGroup)
	svc.running.Store(true)

	_, err := svc.ParseAll(context.Background())
	if !errors.Is(err, domain.ErrParseInProgress) {
		t.Fatalf("error = %v, want ErrParseInProgress", err)
	}
}

func TestParseAllStopsOnCancelledContext(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &fakeWall{}, []domain.Language{domain.Russian}, testGroup)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.ParseAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestParseAllSurvivesPanickingBackend(t *testing.T) {
	repo := newMemoryRepo()
	wall := &fakeWall{posts: map[string][]entities.Post{"itmo": scanPosts()}}

	resolver := extract.NewDateResolver(testFloor, fixedClock)
	analyzer := NewAnalyzer(panickingCompleter{trigger: "робототехнике"}, resolver, time.Second, nil, discardLogger())
	pipeline := NewPipeline(analyzer, resolver, extract.NewFieldExtractor(nil, "Главный корпус"), nil, fakeT{},
		PipelineConfig{Institution: "ITMO"}, nil, discardLogger())
	svc := NewEventService(repo, wall, pipeline, NewDedupStore(repo, nil, discardLogger()),
		ScanConfig{Groups: []entities.Group{testGroup}, Languages: []domain.Language{domain.Russian}},
		fixedClock, nil, discardLogger())

	report, err := svc.ParseAll(context.Background())
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if report.Extracted != 1 || report.Saved != 1 || report.FailedGroups != 0 {
		t.Errorf("report = %+v, want only the hackathon saved", report)
	}
}
