package categories

import (
	"context"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/audit/audittest"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/guard/guardtest"
	"github.com/khanghh/vbs/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCategoryRepository struct {
	mu   sync.Mutex
	rows map[uint]*model.Category
	next uint
}

func (r *fakeCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository { return r }

func (r *fakeCategoryRepository) First(ctx context.Context, id uint) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Category
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepository) nameTaken(name string, except uint) bool {
	for _, c := range r.rows {
		if c.Name == name && c.ID != except {
			return true
		}
	}
	return false
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(category.Name, 0) {
		return &mysql.MySQLError{Number: 1062}
	}
	r.next++
	category.ID = r.next
	r.rows[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, _ := columns["name"].(string)
	if r.nameTaken(name, id) {
		return &mysql.MySQLError{Number: 1062}
	}
	r.rows[id].Name = name
	r.rows[id].Color, _ = columns["color"].(string)
	return nil
}

func (r *fakeCategoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func newTestCategoryService(role model.Role) (*CategoryService, *fakeCategoryRepository, *audittest.Repository) {
	repo := &fakeCategoryRepository{rows: make(map[uint]*model.Category)}
	auditRepo := &audittest.Repository{}
	g := guard.New(&guardtest.Identity{Session: guardtest.Session(1, role)}, &guardtest.Events{}, guardtest.NewScopes())
	return NewCategoryService(g, repo, audit.NewWriter(auditRepo)), repo, auditRepo
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo, auditRepo := newTestCategoryService(model.RoleAdmin)

	c, err := svc.Create(ctx, CategoryInput{Name: " Preschool ", Color: "#FFAA00", MinGrade: -1, MaxGrade: 0})
	require.NoError(t, err)
	require.Equal(t, "Preschool", c.Name)
	require.Equal(t, "#ffaa00", c.Color)

	_, err = svc.Create(ctx, CategoryInput{Name: "Preschool", MinGrade: 0, MaxGrade: 0})
	require.ErrorIs(t, err, guard.ErrValidation)

	require.NoError(t, svc.Update(ctx, c.ID, CategoryInput{Name: "Little Lambs", MinGrade: -1, MaxGrade: 0}))
	stored, err := repo.First(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Little Lambs", stored.Name)

	ok, err := svc.Exists(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.Delete(ctx, c.ID))
	ok, err = svc.Exists(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, svc.Delete(ctx, c.ID), guard.ErrNotFound)
	require.ErrorIs(t, svc.Update(ctx, c.ID, CategoryInput{Name: "x"}), guard.ErrNotFound)
	require.Equal(t, []audit.Action{
		audit.ActionCategoryCreated,
		audit.ActionCategoryUpdated,
		audit.ActionCategoryDeleted,
	}, auditRepo.Actions())
}

func TestCategoryValidation(t *testing.T) {
	svc, _, _ := newTestCategoryService(model.RoleAdmin)
	cases := []CategoryInput{
		{Name: ""},
		{Name: "x", Color: "red"},
		{Name: "x", MinGrade: 3, MaxGrade: 1},
		{Name: "x", MinGrade: 0, MaxGrade: 13},
		{Name: "x", MinGrade: -2, MaxGrade: 0},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		require.ErrorIs(t, err, guard.ErrValidation)
	}
}

func TestCategoryMutationsRequireAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _, auditRepo := newTestCategoryService(model.RoleStaff)

	_, err := svc.Create(ctx, CategoryInput{Name: "Youth", MinGrade: 6, MaxGrade: 8})
	require.ErrorIs(t, err, guard.ErrAuthorization)
	require.ErrorIs(t, svc.Delete(ctx, 1), guard.ErrAuthorization)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, auditRepo.Entries)
}
