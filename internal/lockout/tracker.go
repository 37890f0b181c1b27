package lockout

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/khanghh/vbs/internal/store"
	"github.com/khanghh/vbs/params"
)

// Tracker counts failed sign-in attempts per email and locks an email once
// maxAttempts failures land inside window. It is advisory rate limiting: with
// the memory backend every process keeps its own counters, and concurrent
// failures for the same email may race on the read-modify-write.
type Tracker struct {
	store       Store
	maxAttempts int
	window      time.Duration
	duration    time.Duration
	now         func() time.Time
}

type Option func(*Tracker)

func WithMaxAttempts(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxAttempts = n
		}
	}
}

func WithWindow(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.window = d
		}
	}
}

func WithDuration(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.duration = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NormalizeEmail is the lookup key for lockout records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (t *Tracker) load(ctx context.Context, key string) (*Record, error) {
	rec, err := t.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ttl keeps the record around until both the window and any lock have passed.
func (t *Tracker) ttl(rec Record, now time.Time) time.Duration {
	expiresAt := rec.FirstFailureAt.Add(t.window)
	if rec.LockedUntil.After(expiresAt) {
		expiresAt = rec.LockedUntil
	}
	ttl := expiresAt.Sub(now)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

// RecordLoginAttempt clears the record on success and counts a failure otherwise.
func (t *Tracker) RecordLoginAttempt(ctx context.Context, email string, success bool) error {
	key := NormalizeEmail(email)
	if key == "" {
		return nil
	}
	if success {
		err := t.store.Delete(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	now := t.now()
	rec, err := t.load(ctx, key)
	if err != nil {
		return err
	}
	if rec == nil || (!rec.lockedAt(now) && now.Sub(rec.FirstFailureAt) > t.window) {
		rec = &Record{FirstFailureAt: now}
	}
	rec.FailureCount++
	if rec.FailureCount >= t.maxAttempts && !rec.lockedAt(now) {
		rec.LockedUntil = now.Add(t.duration)
		slog.Warn("Account locked after repeated sign-in failures", "email", key, "failures", rec.FailureCount, "until", rec.LockedUntil)
	}
	return t.store.Set(ctx, key, *rec, t.ttl(*rec, now))
}

func (t *Tracker) IsAccountLocked(ctx context.Context, email string) (bool, error) {
	_, locked, err := t.LockoutRemaining(ctx, email)
	return locked, err
}

// LockoutRemaining returns the whole seconds left on a lock, rounded up.
// locked is false when the email is not currently locked.
func (t *Tracker) LockoutRemaining(ctx context.Context, email string) (seconds int, locked bool, err error) {
	key := NormalizeEmail(email)
	if key == "" {
		return 0, false, nil
	}
	rec, err := t.load(ctx, key)
	if err != nil || rec == nil {
		return 0, false, err
	}
	now := t.now()
	if !rec.lockedAt(now) {
		return 0, false, nil
	}
	remaining := rec.LockedUntil.Sub(now)
	return int(math.Max(0, math.Ceil(remaining.Seconds()))), true, nil
}

// CheckLocked returns a *LockedError when email is locked.
func (t *Tracker) CheckLocked(ctx context.Context, email string) error {
	key := NormalizeEmail(email)
	rec, err := t.load(ctx, key)
	if err != nil || rec == nil {
		return err
	}
	now := t.now()
	if rec.lockedAt(now) {
		return NewLockedError(rec.LockedUntil, rec.LockedUntil.Sub(now))
	}
	return nil
}

func NewTracker(s Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:       s,
		maxAttempts: params.LockoutMaxAttempts,
		window:      params.LockoutWindow,
		duration:    params.LockoutDuration,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
