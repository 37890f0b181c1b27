package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"gorm.io/datatypes"
)

type Record struct {
	UserID       uint
	Action       Action
	ResourceType guard.ResourceKind
	ResourceID   uint
	Details      map[string]any
}

// Writer appends audit entries after the audited change has committed.
// Writes are best effort: a failure is logged and never undoes the change.
type Writer struct {
	repo AuditRepository
}

func (w *Writer) entry(rec Record) (*model.AuditEntry, error) {
	if !rec.Action.Valid() {
		return nil, fmt.Errorf("unknown audit action %q", rec.Action)
	}
	entry := &model.AuditEntry{
		EntryID:      uuid.NewString(),
		UserID:       rec.UserID,
		Action:       string(rec.Action),
		ResourceType: string(rec.ResourceType),
		ResourceID:   rec.ResourceID,
	}
	if len(rec.Details) > 0 {
		blob, err := json.Marshal(rec.Details)
		if err != nil {
			return nil, err
		}
		entry.Details = datatypes.JSON(blob)
	}
	return entry, nil
}

// Log records rec. It returns nothing on purpose: callers have already
// committed their change.
func (w *Writer) Log(ctx context.Context, rec Record) {
	entry, err := w.entry(rec)
	if err == nil {
		err = w.repo.Create(context.WithoutCancel(ctx), entry)
	}
	if err != nil {
		slog.Error("Failed to write audit entry",
			"action", rec.Action,
			"userID", rec.UserID,
			"resourceType", rec.ResourceType,
			"resourceID", rec.ResourceID,
			"error", err,
		)
	}
}

func NewWriter(repo AuditRepository) *Writer {
	return &Writer{repo: repo}
}

// Service exposes the audit trail to administrators.
type Service struct {
	guard *guard.Guard
	repo  AuditRepository
}

func (s *Service) Recent(ctx context.Context) ([]*model.AuditEntry, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.Recent(ctx, params.AuditRecentLimit)
}

func NewService(g *guard.Guard, repo AuditRepository) *Service {
	return &Service{guard: g, repo: repo}
}
