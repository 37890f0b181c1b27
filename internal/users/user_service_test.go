package users

import (
	"context"
	"testing"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/audit/audittest"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/guard/guardtest"
	"github.com/khanghh/vbs/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(sess *guard.Session) (*UserService, *fakeUserRepository, *audittest.Repository) {
	repo := newFakeUserRepository()
	auditRepo := &audittest.Repository{}
	g := guard.New(&guardtest.Identity{Session: sess}, &guardtest.Events{}, guardtest.NewScopes())
	return NewUserService(g, repo, audit.NewWriter(auditRepo)), repo, auditRepo
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _, auditRepo := newTestUserService(nil)

	user, err := svc.CreateUser(ctx, CreateUserOptions{
		Email:    " Admin@Example.com",
		FullName: "Site Admin",
		Password: "s3cret-pass",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", user.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))
	require.Equal(t, []audit.Action{audit.ActionUserCreated}, auditRepo.Actions())

	_, err = svc.CreateUser(ctx, CreateUserOptions{
		Email:    "admin@example.com",
		FullName: "Again",
		Password: "s3cret-pass",
		Role:     model.RoleViewer,
	})
	require.ErrorIs(t, err, ErrEmailRegistered)

	found, err := svc.GetUserByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = svc.GetUserByID(ctx, 1)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, _ := newTestUserService(nil)
	cases := []CreateUserOptions{
		{Email: "not-an-email", FullName: "x", Password: "longenough", Role: model.RoleViewer},
		{Email: "a@b.com", FullName: " ", Password: "longenough", Role: model.RoleViewer},
		{Email: "a@b.com", FullName: "x", Password: "short", Role: model.RoleViewer},
		{Email: "a@b.com", FullName: "x", Password: "longenough"},
	}
	for _, opts := range cases {
		_, err := svc.CreateUser(context.Background(), opts)
		require.ErrorIs(t, err, guard.ErrValidation)
	}
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	svc, repo, auditRepo := newTestUserService(nil)
	admin := repo.add("admin@b.com", "password1", model.RoleAdmin)
	viewer := repo.add("viewer@b.com", "password1", model.RoleViewer)
	svc.guard = guard.New(&guardtest.Identity{Session: guardtest.Session(admin.ID, model.RoleAdmin)}, &guardtest.Events{}, guardtest.NewScopes())

	require.NoError(t, svc.ChangeRole(ctx, viewer.ID, "staff"))
	updated, err := repo.First(ctx, viewer.ID)
	require.NoError(t, err)
	require.Equal(t, model.RoleStaff, updated.Role)
	require.Equal(t, []audit.Action{audit.ActionUserRoleChanged}, auditRepo.Actions())

	err = svc.ChangeRole(ctx, admin.ID, "VIEWER")
	require.ErrorIs(t, err, guard.ErrValidation)

	err = svc.ChangeRole(ctx, viewer.ID, "OWNER")
	require.ErrorIs(t, err, guard.ErrValidation)

	err = svc.ChangeRole(ctx, "x", "STAFF")
	require.ErrorIs(t, err, guard.ErrValidation)

	err = svc.ChangeRole(ctx, 9999, "STAFF")
	require.ErrorIs(t, err, guard.ErrNotFound)
	require.Len(t, auditRepo.Entries, 1)
}

func TestChangeRoleRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestUserService(guardtest.Session(1, model.RoleStaff))
	viewer := repo.add("viewer@b.com", "password1", model.RoleViewer)

	err := svc.ChangeRole(ctx, viewer.ID, "ADMIN")
	require.ErrorIs(t, err, guard.ErrAuthorization)
	_, err = svc.List(ctx)
	require.ErrorIs(t, err, guard.ErrAuthorization)
}
