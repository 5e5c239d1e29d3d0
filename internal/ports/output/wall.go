package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

// WallFetcher returns the latest posts of a community wall, newest first.
type WallFetcher interface {
	FetchWall(ctx context.Context, group entities.Group, count int) ([]entities.Post, error)
}
