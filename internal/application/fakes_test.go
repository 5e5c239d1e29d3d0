package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/extract"
	"eventbot/internal/ports/output"
	"eventbot/pkg/tz"
)

var (
	testNow   = time.Date(2025, time.October, 20, 12, 0, 0, 0, tz.Moscow)
	testFloor = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	testGroup = entities.Group{Name: "itmo", ID: 123}
)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCompleter struct {
	answer string
	err    error
	calls  int
	mu     sync.Mutex
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.answer, f.err
}

func (f *fakeCompleter) Name() string { return "fake" }

type fakeTranslator struct {
	failOn  map[string]bool
	panicOn map[string]bool
}

func (f *fakeTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	if f.panicOn[text] {
		panic("translator bug")
	}
	if f.failOn[text] {
		return "", errors.New("translation backend down")
	}
	return fmt.Sprintf("[%s] %s", target, text), nil
}

type fakeT struct{}

func (fakeT) T(locale, key string, data map[string]any) string {
	switch key {
	case "event.placeholder_title":
		if locale == "en" {
			return fmt.Sprintf("%v Event", data["Institution"])
		}
		return fmt.Sprintf("Мероприятие %v", data["Institution"])
	case "event.tags":
		if locale == "en" {
			return "#event"
		}
		return "#мероприятие"
	}
	return key
}

type eventKey struct {
	source, date, language string
}

// memoryRepo enforces the unique key under a mutex, like a unique index.
type memoryRepo struct {
	mu      sync.Mutex
	rows    map[eventKey]entities.Event
	order   []eventKey
	failAt  int // 1-based insert attempt that fails, 0 = never
	attempt int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[eventKey]entities.Event{}}
}

func (r *memoryRepo) InsertIfAbsent(ctx context.Context, e *entities.Event) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempt++
	if r.failAt > 0 && r.attempt == r.failAt {
		return false, errors.New("disk full")
	}
	k := eventKey{e.Source, e.DateISO(), e.Language}
	if _, ok := r.rows[k]; ok {
		return false, nil
	}
	e.ID = int64(len(r.rows) + 1)
	r.rows[k] = *e
	r.order = append(r.order, k)
	return true, nil
}

func (r *memoryRepo) ListUpcoming(ctx context.Context, language string, from time.Time, limit int) ([]entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Event
	for _, k := range r.order {
		e := r.rows[k]
		if e.Language == language && !e.EventDate.Before(from) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) CountByLanguage(ctx context.Context, language string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.rows {
		if k.language == language {
			n++
		}
	}
	return n, nil
}

type fakeWall struct {
	posts map[string][]entities.Post
	fail  map[string]bool
}

func (f *fakeWall) FetchWall(ctx context.Context, group entities.Group, count int) ([]entities.Post, error) {
	if f.fail[group.Name] {
		return nil, errors.New("vk api error 15: access denied")
	}
	posts := f.posts[group.Name]
	if len(posts) > count {
		posts = posts[:count]
	}
	return posts, nil
}

func newTestPipeline(completer *fakeCompleter, translator *fakeTranslator) *Pipeline {
	resolver := extract.NewDateResolver(testFloor, fixedClock)

	var c output.Completer
	if completer != nil {
		c = completer
	}
	var tr output.TextTranslator
	if translator != nil {
		tr = translator
	}

	analyzer := NewAnalyzer(c, resolver, time.Second, nil, discardLogger())
	fields := extract.NewFieldExtractor(nil, "Главный корпус")
	return NewPipeline(analyzer, resolver, fields, tr, fakeT{},
		PipelineConfig{Institution: "ITMO", TranslationTimeout: time.Second}, nil, discardLogger())
}

// panickingCompleter panics when the prompt mentions trigger.
type panickingCompleter struct {
	trigger string
}

func (p panickingCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if strings.Contains(user, p.trigger) {
		panic("completer bug")
	}
	return "", errors.New("no answer")
}

func (panickingCompleter) Name() string { return "panicking" }
