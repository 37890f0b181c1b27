package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/guard/guardtest"
	"github.com/khanghh/vbs/model"
	"github.com/stretchr/testify/require"
)

func newGuard(sess *guard.Session) (*guard.Guard, *guardtest.Events, *guardtest.Scopes) {
	events := &guardtest.Events{Active: &model.Event{ID: 1, Year: 2026, IsActive: true}}
	scopes := guardtest.NewScopes()
	return guard.New(&guardtest.Identity{Session: sess}, events, scopes), events, scopes
}

func TestRequireRoleViewer(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGuard(guardtest.Session(7, model.RoleViewer))

	sess, err := g.RequireRole(ctx, model.RoleViewer)
	require.NoError(t, err)
	require.Equal(t, uint(7), sess.UserID)

	for _, min := range []model.Role{model.RoleStaff, model.RoleAdmin} {
		_, err := g.RequireRole(ctx, min)
		require.ErrorIs(t, err, guard.ErrAuthorization)
		var authzErr *guard.AuthorizationError
		require.True(t, errors.As(err, &authzErr))
	}
}

func TestRequireRoleAdminPassesEveryLevel(t *testing.T) {
	g, _, _ := newGuard(guardtest.Session(1, model.RoleAdmin))
	for _, min := range []model.Role{model.RoleViewer, model.RoleStaff, model.RoleAdmin} {
		sess, err := g.RequireRole(context.Background(), min)
		require.NoError(t, err)
		require.Equal(t, model.RoleAdmin, sess.Role)
	}
}

func TestRequireRoleWithoutSession(t *testing.T) {
	g, _, _ := newGuard(nil)
	_, err := g.RequireRole(context.Background(), model.RoleAdmin)
	require.ErrorIs(t, err, guard.ErrAuthentication)
	require.NotErrorIs(t, err, guard.ErrAuthorization)
}

func TestRequireRoleRejectsInvalidRole(t *testing.T) {
	g, _, _ := newGuard(&guard.Session{UserID: 3})
	_, err := g.RequireRole(context.Background(), model.RoleViewer)
	require.ErrorIs(t, err, guard.ErrAuthorization)
}

func TestVerifyStudentAccess(t *testing.T) {
	ctx := context.Background()
	g, _, scopes := newGuard(guardtest.Session(1, model.RoleStaff))
	scopes.Put(guard.ResourceStudent, 10, 1)
	scopes.Put(guard.ResourceStudent, 42, 2)

	require.NoError(t, g.VerifyStudentAccess(ctx, 10))

	err := g.VerifyStudentAccess(ctx, 42)
	require.ErrorIs(t, err, guard.ErrAuthorization)
	require.NotContains(t, err.Error(), "2")

	missing := g.VerifyStudentAccess(ctx, 99)
	require.ErrorIs(t, missing, guard.ErrNotFound)
	require.Equal(t, missing.Error(), err.Error())
}

func TestVerifySessionAndAttendanceAccess(t *testing.T) {
	ctx := context.Background()
	g, _, scopes := newGuard(guardtest.Session(1, model.RoleStaff))
	scopes.Put(guard.ResourceScheduleSession, 5, 1)
	scopes.Put(guard.ResourceAttendance, 5, 3)

	require.NoError(t, g.VerifySessionAccess(ctx, 5))
	require.ErrorIs(t, g.VerifyAttendanceAccess(ctx, 5), guard.ErrAuthorization)
	require.ErrorIs(t, g.VerifyStudentAccess(ctx, 5), guard.ErrNotFound)
}

func TestVerifyAccessWithoutActiveEvent(t *testing.T) {
	ctx := context.Background()
	g, events, scopes := newGuard(guardtest.Session(1, model.RoleStaff))
	events.Active = nil
	scopes.Put(guard.ResourceStudent, 10, 1)

	err := g.VerifyStudentAccess(ctx, 10)
	require.ErrorIs(t, err, guard.ErrNotFound)
	require.Equal(t, "No active event", err.Error())
}

func TestVerifyAccessResolvesActiveEventEachCall(t *testing.T) {
	ctx := context.Background()
	g, events, scopes := newGuard(guardtest.Session(1, model.RoleStaff))
	scopes.Put(guard.ResourceStudent, 10, 1)

	require.NoError(t, g.VerifyStudentAccess(ctx, 10))
	events.Active = &model.Event{ID: 2, Year: 2027, IsActive: true}
	require.ErrorIs(t, g.VerifyStudentAccess(ctx, 10), guard.ErrAuthorization)
	require.Equal(t, 2, events.Calls)
}
