package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"gorm.io/gorm"
)

const (
	minEventYear = 2000
	maxEventYear = 2100
)

type EventInput struct {
	Year      int
	Theme     string
	StartDate string
	EndDate   string
}

func (in EventInput) toModel() (*model.Event, error) {
	if in.Year < minEventYear || in.Year > maxEventYear {
		return nil, guard.NewValidationError(fmt.Sprintf("Year must be between %d and %d.", minEventYear, maxEventYear))
	}
	theme := strings.TrimSpace(in.Theme)
	if theme == "" {
		return nil, guard.NewValidationError("Theme is required.")
	}
	if len(theme) > params.MaxEventThemeLength {
		return nil, guard.NewValidationError("Theme is too long.")
	}
	start, err := common.ParseDay(in.StartDate)
	if err != nil {
		return nil, guard.NewValidationError("Invalid start date.")
	}
	end, err := common.ParseDay(in.EndDate)
	if err != nil {
		return nil, guard.NewValidationError("Invalid end date.")
	}
	if end.Before(start) {
		return nil, guard.NewValidationError("End date must not be before start date.")
	}
	return &model.Event{Year: in.Year, Theme: theme, StartDate: start, EndDate: end}, nil
}

// EventService manages yearly events. Every mutation requires ADMIN.
type EventService struct {
	guard *guard.Guard
	repo  EventRepository
	audit *audit.Writer
}

func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *EventService) get(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.repo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, guard.NewNotFoundError("Event not found.")
	}
	return event, err
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	event, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		if common.IsDuplicateKey(err) {
			return nil, guard.NewValidationError(fmt.Sprintf("An event for %d already exists.", in.Year))
		}
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionEventCreated,
		ResourceType: guard.ResourceEvent,
		ResourceID:   event.ID,
		Details:      map[string]any{"year": event.Year},
	})
	return event, nil
}

func (s *EventService) Update(ctx context.Context, rawID any, in EventInput) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "event")
	if err != nil {
		return err
	}
	event, err := in.toModel()
	if err != nil {
		return err
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	columns := map[string]interface{}{
		"year":       event.Year,
		"theme":      event.Theme,
		"start_date": event.StartDate,
		"end_date":   event.EndDate,
	}
	if err := s.repo.Updates(ctx, id, columns); err != nil {
		if common.IsDuplicateKey(err) {
			return guard.NewValidationError(fmt.Sprintf("An event for %d already exists.", in.Year))
		}
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionEventUpdated,
		ResourceType: guard.ResourceEvent,
		ResourceID:   id,
	})
	return nil
}

// Delete removes an event and everything registered under it. The active
// event cannot be deleted.
func (s *EventService) Delete(ctx context.Context, rawID any) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "event")
	if err != nil {
		return err
	}
	event, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if event.IsActive {
		return guard.NewValidationError("The active event cannot be deleted.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionEventDeleted,
		ResourceType: guard.ResourceEvent,
		ResourceID:   id,
		Details:      map[string]any{"year": event.Year},
	})
	return nil
}

// SetActive makes id the only active event.
func (s *EventService) SetActive(ctx context.Context, rawID any) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawID, "event")
	if err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return guard.NewNotFoundError("Event not found.")
		}
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionEventActivated,
		ResourceType: guard.ResourceEvent,
		ResourceID:   id,
	})
	return nil
}

func NewEventService(g *guard.Guard, repo EventRepository, auditWriter *audit.Writer) *EventService {
	return &EventService{
		guard: g,
		repo:  repo,
		audit: auditWriter,
	}
}
