package application

import (
	"context"
	"errors"
	"time"

	"eventbot/internal/domain"
)

// RunSchedule parses once immediately, then every interval, until ctx is
// done. A zero interval runs the startup parse only.
func (s *EventService) RunSchedule(ctx context.Context, interval time.Duration) {
	s.scheduledRun(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scheduledRun(ctx)
		}
	}
}

func (s *EventService) scheduledRun(ctx context.Context) {
	_, err := s.ParseAll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrParseInProgress):
		s.logger.Info("scheduled parse skipped: previous run still active")
	case errors.Is(err, context.Canceled):
	default:
		s.logger.Error("❌ scheduled parse failed", "error", err)
	}
}
