package web

import (
	"context"

	"github.com/khanghh/vbs/internal/categories"
	"github.com/khanghh/vbs/internal/events"
	"github.com/khanghh/vbs/internal/reports"
	"github.com/khanghh/vbs/internal/schedule"
	"github.com/khanghh/vbs/internal/settings"
	"github.com/khanghh/vbs/internal/students"
	"github.com/khanghh/vbs/model"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, in settings.SettingsInput) (*model.Settings, error)
}

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, in events.EventInput) (*model.Event, error)
	Update(ctx context.Context, rawID any, in events.EventInput) error
	Delete(ctx context.Context, rawID any) error
	SetActive(ctx context.Context, rawID any) error
}

type StudentService interface {
	List(ctx context.Context) ([]*model.Student, error)
	Create(ctx context.Context, in students.StudentInput) (*model.Student, error)
	Update(ctx context.Context, rawID any, in students.StudentInput) error
	Delete(ctx context.Context, rawID any) error
}

type ScheduleService interface {
	List(ctx context.Context) ([]*model.ScheduleSession, error)
	Create(ctx context.Context, in schedule.SessionInput) (*model.ScheduleSession, error)
	Delete(ctx context.Context, rawID any) error
}

type AttendanceService interface {
	CheckIn(ctx context.Context, rawStudentID any) (*model.Attendance, error)
	CheckOut(ctx context.Context, rawAttendanceID any, pickupBy string) error
	ListDay(ctx context.Context, day string) ([]*model.Attendance, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, in categories.CategoryInput) (*model.Category, error)
	Update(ctx context.Context, rawID any, in categories.CategoryInput) error
	Delete(ctx context.Context, rawID any) error
}

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	ChangeRole(ctx context.Context, rawID any, rawRole string) error
}

type ReportService interface {
	Summary(ctx context.Context) (*reports.Summary, error)
}

// Services bundles what the dashboard handlers call.
type Services struct {
	Settings   SettingsService
	Events     EventService
	Students   StudentService
	Schedule   ScheduleService
	Attendance AttendanceService
	Categories CategoryService
	Users      UserService
	Reports    ReportService
}
