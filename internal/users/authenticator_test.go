package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/internal/store"
	"github.com/khanghh/vbs/model"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestAuthenticator() (*Authenticator, *fakeUserRepository, *lockout.Tracker, *testClock) {
	repo := newFakeUserRepository()
	clock := &testClock{now: time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)}
	tracker := lockout.NewTracker(lockout.NewStore(store.NewMemoryStorage()), lockout.WithClock(clock.Now))
	return NewAuthenticator(repo, tracker), repo, tracker, clock
}

func TestAuthenticateSuccess(t *testing.T) {
	auth, repo, _, _ := newTestAuthenticator()
	repo.add("a@b.com", "correct horse", model.RoleStaff)

	user, err := auth.Authenticate(context.Background(), "  A@B.com ", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, model.RoleStaff, user.Role)
}

func TestAuthenticateLocksAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	auth, repo, tracker, clock := newTestAuthenticator()
	repo.add("a@b.com", "correct horse", model.RoleStaff)

	for i := 0; i < 4; i++ {
		_, err := auth.Authenticate(ctx, "a@b.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		clock.Advance(20 * time.Second)
	}
	_, err := auth.Authenticate(ctx, "a@b.com", "wrong")
	var lockedErr *lockout.LockedError
	require.True(t, errors.As(err, &lockedErr))
	require.Equal(t, 15*time.Minute, lockedErr.Remaining)

	locked, err := tracker.IsAccountLocked(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, locked)
	remaining, locked, err := tracker.LockoutRemaining(ctx, "A@B.COM")
	require.NoError(t, err)
	require.True(t, locked)
	require.Equal(t, 900, remaining)

	// The correct password does not bypass an active lock.
	_, err = auth.Authenticate(ctx, "a@b.com", "correct horse")
	require.True(t, errors.As(err, &lockedErr))

	clock.Advance(15 * time.Minute)
	user, err := auth.Authenticate(ctx, "a@b.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	locked, err = tracker.IsAccountLocked(ctx, "a@b.com")
	require.NoError(t, err)
	require.False(t, locked)
}

func TestAuthenticateSuccessResetsFailures(t *testing.T) {
	ctx := context.Background()
	auth, repo, _, _ := newTestAuthenticator()
	repo.add("a@b.com", "correct horse", model.RoleViewer)

	for i := 0; i < 4; i++ {
		_, err := auth.Authenticate(ctx, "a@b.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := auth.Authenticate(ctx, "a@b.com", "correct horse")
	require.NoError(t, err)

	// counting restarts, so four more failures still do not lock
	for i := 0; i < 4; i++ {
		_, err := auth.Authenticate(ctx, "a@b.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthenticateUnknownEmailCountsAsFailure(t *testing.T) {
	ctx := context.Background()
	auth, _, tracker, _ := newTestAuthenticator()

	for i := 0; i < 4; i++ {
		_, err := auth.Authenticate(ctx, "ghost@b.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := auth.Authenticate(ctx, "ghost@b.com", "whatever")
	var lockedErr *lockout.LockedError
	require.True(t, errors.As(err, &lockedErr))

	locked, err := tracker.IsAccountLocked(ctx, "ghost@b.com")
	require.NoError(t, err)
	require.True(t, locked)
}

func TestAuthenticateDisabledUser(t *testing.T) {
	ctx := context.Background()
	auth, repo, _, _ := newTestAuthenticator()
	user := repo.add("a@b.com", "correct horse", model.RoleAdmin)
	require.NoError(t, repo.Updates(ctx, user.ID, map[string]interface{}{"disabled": true}))

	_, err := auth.Authenticate(ctx, "a@b.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateEmptyInput(t *testing.T) {
	auth, _, tracker, _ := newTestAuthenticator()
	_, err := auth.Authenticate(context.Background(), " ", "x")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Authenticate(context.Background(), "a@b.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	locked, err := tracker.IsAccountLocked(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.False(t, locked)
}
