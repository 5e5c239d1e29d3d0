package application

import (
	"context"
	"testing"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

func TestRunScheduleParsesAtStartup(t *testing.T) {
	repo := newMemoryRepo()
	wall := &fakeWall{posts: map[string][]entities.Post{"itmo": scanPosts()}}
	svc := newTestService(repo, wall, []domain.Language{domain.Russian}, testGroup)

	svc.RunSchedule(context.Background(), 0)

	if n, _ := repo.CountByLanguage(context.Background(), "ru"); n != 2 {
		t.Fatalf("startup parse stored %d events, want 2", n)
	}
}

func TestRunScheduleStopsWithContext(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &fakeWall{}, []domain.Language{domain.Russian}, testGroup)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunSchedule(ctx, 5*time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSchedule did not return after cancel")
	}
}
