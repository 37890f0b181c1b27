package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

// AttendanceService records daily check-in and check-out.
type AttendanceService struct {
	guard *guard.Guard
	repo  AttendanceRepository
	audit *audit.Writer
	now   func() time.Time
}

func (s *AttendanceService) existing(ctx context.Context, studentID uint, day time.Time) (*model.Attendance, error) {
	record, err := s.repo.FirstByStudentDay(ctx, studentID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return record, err
}

// CheckIn records that a student arrived today. A second check-in on the
// same day returns the first record unchanged.
func (s *AttendanceService) CheckIn(ctx context.Context, rawStudentID any) (*model.Attendance, error) {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}
	studentID, err := guard.ValidateID(rawStudentID, "student")
	if err != nil {
		return nil, err
	}
	if err := s.guard.VerifyStudentAccess(ctx, studentID); err != nil {
		return nil, err
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := common.Day(now)
	if record, err := s.existing(ctx, studentID, day); record != nil || err != nil {
		return record, err
	}
	record := &model.Attendance{
		EventID:   event.ID,
		StudentID: studentID,
		Day:       day,
		CheckInAt: now,
		CheckInBy: sess.UserID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// a concurrent check-in won the unique (student, day) index
		if common.IsDuplicateKey(err) {
			return s.existing(ctx, studentID, day)
		}
		return nil, err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionAttendanceCheckedIn,
		ResourceType: guard.ResourceAttendance,
		ResourceID:   record.ID,
		Details:      map[string]any{"studentId": studentID, "day": common.FormatDay(day)},
	})
	return record, nil
}

// CheckOut releases a checked-in student to pickupBy.
func (s *AttendanceService) CheckOut(ctx context.Context, rawAttendanceID any, pickupBy string) error {
	sess, err := s.guard.RequireRole(ctx, model.RoleStaff)
	if err != nil {
		return err
	}
	id, err := guard.ValidateID(rawAttendanceID, "attendance")
	if err != nil {
		return err
	}
	if err := s.guard.VerifyAttendanceAccess(ctx, id); err != nil {
		return err
	}
	pickupBy = strings.TrimSpace(pickupBy)
	if pickupBy == "" {
		return guard.NewValidationError("Pickup person is required.")
	}
	if len(pickupBy) > 128 {
		return guard.NewValidationError("Pickup person is too long.")
	}
	record, err := s.repo.First(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guard.NewNotFoundError("Attendance record not found.")
	}
	if err != nil {
		return err
	}
	if record.CheckOutAt != nil {
		return guard.NewValidationError("Student is already checked out.")
	}

	now := s.now()
	columns := map[string]interface{}{
		"check_out_at": now,
		"check_out_by": sess.UserID,
		"pickup_by":    pickupBy,
	}
	if err := s.repo.Updates(ctx, id, columns); err != nil {
		return err
	}
	s.audit.Log(ctx, audit.Record{
		UserID:       sess.UserID,
		Action:       audit.ActionAttendanceCheckedOut,
		ResourceType: guard.ResourceAttendance,
		ResourceID:   id,
		Details:      map[string]any{"studentId": record.StudentID, "pickupBy": pickupBy},
	})
	return nil
}

// ListDay returns the active event's attendance for day (YYYY-MM-DD), or
// today when day is empty.
func (s *AttendanceService) ListDay(ctx context.Context, day string) ([]*model.Attendance, error) {
	if _, err := s.guard.RequireRole(ctx, model.RoleViewer); err != nil {
		return nil, err
	}
	date := common.Day(s.now())
	if strings.TrimSpace(day) != "" {
		parsed, err := common.ParseDay(day)
		if err != nil {
			return nil, guard.NewValidationError("Invalid day.")
		}
		date = parsed
	}
	event, err := s.guard.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEventDay(ctx, event.ID, date)
}

func NewAttendanceService(g *guard.Guard, repo AttendanceRepository, auditWriter *audit.Writer) *AttendanceService {
	return &AttendanceService{
		guard: g,
		repo:  repo,
		audit: auditWriter,
		now:   time.Now,
	}
}
