package lockout

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/store"
	"github.com/khanghh/vbs/params"
)

// Record tracks failed sign-in attempts for one normalized email.
type Record struct {
	FailureCount   int       `json:"failure_count"`
	FirstFailureAt time.Time `json:"first_failure_at"`
	LockedUntil    time.Time `json:"locked_until"` // zero when not locked
}

func (r Record) lockedAt(now time.Time) bool {
	return !r.LockedUntil.IsZero() && r.LockedUntil.After(now)
}

// Store keeps lockout records. Get returns store.ErrNotFound for unknown keys.
type Store interface {
	Get(ctx context.Context, key string) (Record, error)
	Set(ctx context.Context, key string, rec Record, expiresIn time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NewStore returns a Store backed by any fiber storage (memory or redis).
func NewStore(storage fiber.Storage) Store {
	return store.New[Record](storage, params.LockoutKeyPrefix)
}
