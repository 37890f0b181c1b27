package events

import (
	"context"
	"log/slog"

	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
)

// Resolver looks up the active event on every call. Nothing is cached, so an
// activation is visible to the next request.
type Resolver struct {
	repo EventRepository
}

// GetActiveEvent fails with a NotFoundError unless exactly one event is
// active. Two active rows mean the single-active invariant was broken, and
// picking one would silently scope requests to the wrong event.
func (r *Resolver) GetActiveEvent(ctx context.Context) (*model.Event, error) {
	active, err := r.repo.FindActive(ctx, 2)
	if err != nil {
		return nil, err
	}
	if len(active) > 1 {
		slog.Error("More than one active event", "first", active[0].ID, "second", active[1].ID)
	}
	if len(active) != 1 {
		return nil, guard.NewNotFoundError("No active event")
	}
	return active[0], nil
}

func NewResolver(repo EventRepository) *Resolver {
	return &Resolver{repo: repo}
}
