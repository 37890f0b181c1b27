package students

import (
	"context"
	"errors"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

// CategoryChecker reports whether a category exists.
type CategoryChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// StudentService registers students into the active event. Every access to
// an existing student is checked against the active event first.
type StudentService struct {
	guard      *guard.Guard
	repo       StudentRepository
	categories CategoryChecker
	audit      *audit.Writer
}

func (s *StudentService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.categories.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return guard.NewValidationError("Unknown category.")
	}
	return nil
}

func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, event.ID)
}

func (s *StudentService) Get(ctx context.Context, rawID any) (*model.Student, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	id, err := guard.ValidateID(rawID, "student")
	if err != nil {
		return nil, err
	}
	if err := s.guard.VerifyStudentAccess(ctx, id); err != nil {
		return nil, err
	}
	student, err := s.repo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, guard.NewNotFoundError("Student not found.")
	}
	return student, err
}

func (s *StudentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}
	student, err := in.toModel()
	if err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, student.CategoryID); err != nil {
		return nil, err
	}
	student.EventID = event.ID
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionStudentCreated,
		ResourceType: guard.ResourceStudent,
		ResourceID:   student.ID,
		Details:      map[string]any{"eventId": event.ID},
	})
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, rawID any, in StudentInput) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "student")
	if err != nil {
		return err
	}
	if err := s.guard.VerifyStudentAccess(ctx, id); err != nil {
		return err
	}
	student, err := in.toModel()
	if err != nil {
		return err
	}
	if err := s.checkCategory(ctx, student.CategoryID); err != nil {
		return err
	}
	if err := s.repo.Updates(ctx, id, updateColumns(student)); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionStudentUpdated,
		ResourceType: guard.ResourceStudent,
		ResourceID:   id,
	})
	return nil
}

func (s *StudentService) Delete(ctx context.Context, rawID any) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "student")
	if err != nil {
		return err
	}
	if err := s.guard.VerifyStudentAccess(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionStudentDeleted,
		ResourceType: guard.ResourceStudent,
		ResourceID:   id,
	})
	return nil
}

func NewStudentService(g *guard.Guard, repo StudentRepository, categories CategoryChecker, auditWriter *audit.Writer) *StudentService {
	return &StudentService{
		guard:      g,
		repo:       repo,
		categories: categories,
		audit:      auditWriter,
	}
}
