package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
)

const clockLayout = "15:04"

type CategoryChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type SessionInput struct {
	Title      string
	Location   string
	Day        string
	StartTime  string
	EndTime    string
	CategoryID string
}

func (in SessionInput) toModel(event *model.Event) (*model.ScheduleSession, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, guard.NewValidationError("Title is required.")
	}
	if len(title) > params.MaxScheduleTitleLength {
		return nil, guard.NewValidationError("Title is too long.")
	}
	location := strings.TrimSpace(in.Location)
	if len(location) > 128 {
		return nil, guard.NewValidationError("Location is too long.")
	}
	day, err := common.ParseDay(in.Day)
	if err != nil {
		return nil, guard.NewValidationError("Invalid day.")
	}
	if day.Before(common.Day(event.StartDate)) || day.After(common.Day(event.EndDate)) {
		return nil, guard.NewValidationError("Day must fall within the event dates.")
	}
	start, err := time.Parse(clockLayout, strings.TrimSpace(in.StartTime))
	if err != nil {
		return nil, guard.NewValidationError("Invalid start time.")
	}
	end, err := time.Parse(clockLayout, strings.TrimSpace(in.EndTime))
	if err != nil {
		return nil, guard.NewValidationError("Invalid end time.")
	}
	if !end.After(start) {
		return nil, guard.NewValidationError("End time must be after start time.")
	}
	return &model.ScheduleSession{
		EventID:   event.ID,
		Title:     title,
		Location:  location,
		Day:       day,
		StartTime: start.Format(clockLayout),
		EndTime:   end.Format(clockLayout),
	}, nil
}

// ScheduleService manages the timetable of the active event.
type ScheduleService struct {
	guard      *guard.Guard
	repo       ScheduleRepository
	categories CategoryChecker
	audit      *audit.Writer
}

func (s *ScheduleService) List(ctx context.Context) ([]*model.ScheduleSession, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, event.ID)
}

func (s *ScheduleService) Create(ctx context.Context, in SessionInput) (*model.ScheduleSession, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	session, err := in.toModel(event)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CategoryID) != "" {
		categoryID, err := guard.ValidateID(in.CategoryID, "category")
		if err != nil {
			return nil, err
		}
		ok, err := s.categories.Exists(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, guard.NewValidationError("Unknown category.")
		}
		session.CategoryID = &categoryID
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionSessionCreated,
		ResourceType: guard.ResourceScheduleSession,
		ResourceID:   session.ID,
		Details:      map[string]any{"title": session.Title, "day": common.FormatDay(session.Day)},
	})
	return session, nil
}

func (s *ScheduleService) Delete(ctx context.Context, rawID any) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "session")
	if err != nil {
		return err
	}
	if err := s.guard.VerifySessionAccess(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionSessionDeleted,
		ResourceType: guard.ResourceScheduleSession,
		ResourceID:   id,
	})
	return nil
}

func NewScheduleService(g *guard.Guard, repo ScheduleRepository, categories CategoryChecker, auditWriter *audit.Writer) *ScheduleService {
	return &ScheduleService{
		guard:      g,
		repo:       repo,
		categories: categories,
		audit:      auditWriter,
	}
}
