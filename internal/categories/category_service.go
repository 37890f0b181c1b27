package categories

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"gorm.io/gorm"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const (
	minGrade = -1 // preschool
	maxGrade = 12
)

type CategoryInput struct {
	Name     string
	Color    string
	MinGrade int
	MaxGrade int
}

func (in CategoryInput) toModel() (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, guard.NewValidationError("Category name is required.")
	}
	if len(name) > params.MaxCategoryNameLength {
		return nil, guard.NewValidationError("Category name is too long.")
	}
	color := strings.TrimSpace(in.Color)
	if color != "" && !colorPattern.MatchString(color) {
		return nil, guard.NewValidationError("Color must look like #a1b2c3.")
	}
	if in.MinGrade < minGrade || in.MaxGrade > maxGrade || in.MinGrade > in.MaxGrade {
		return nil, guard.NewValidationError("Invalid grade range.")
	}
	return &model.Category{
		Name:     name,
		Color:    strings.ToLower(color),
		MinGrade: in.MinGrade,
		MaxGrade: in.MaxGrade,
	}, nil
}

// CategoryService manages the age groups shared by every event.
type CategoryService struct {
	guard *guard.Guard
	repo  CategoryRepository
	audit *audit.Writer
}

func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Exists reports whether a category with id is present. Callers validate id.
func (s *CategoryService) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := s.repo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	category, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if common.IsDuplicateKey(err) {
			return nil, guard.NewValidationError("A category with that name already exists.")
		}
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionCategoryCreated,
		ResourceType: guard.ResourceCategory,
		ResourceID:   category.ID,
		Details:      map[string]any{"name": category.Name},
	})
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, rawID any, in CategoryInput) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "category")
	if err != nil {
		return err
	}
	category, err := in.toModel()
	if err != nil {
		return err
	}
	if ok, err := s.Exists(ctx, id); err != nil || !ok {
		if err == nil {
			err = guard.NewNotFoundError("Category not found.")
		}
		return err
	}
	columns := map[string]interface{}{
		"name":      category.Name,
		"color":     category.Color,
		"min_grade": category.MinGrade,
		"max_grade": category.MaxGrade,
	}
	if err := s.repo.Updates(ctx, id, columns); err != nil {
		if common.IsDuplicateKey(err) {
			return guard.NewValidationError("A category with that name already exists.")
		}
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionCategoryUpdated,
		ResourceType: guard.ResourceCategory,
		ResourceID:   id,
	})
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, rawID any) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "category")
	if err != nil {
		return err
	}
	category, err := s.repo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guard.NewNotFoundError("Category not found.")
	}
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionCategoryDeleted,
		ResourceType: guard.ResourceCategory,
		ResourceID:   id,
		Details:      map[string]any{"name": category.Name},
	})
	return nil
}

func NewCategoryService(g *guard.Guard, repo CategoryRepository, auditWriter *audit.Writer) *CategoryService {
	return &CategoryService{
		guard: g,
		repo:  repo,
		audit: auditWriter,
	}
}
