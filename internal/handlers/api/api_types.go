package api

import (
	"context"
	"time"

	"github.com/khanghh/vbs/internal/reports"
	"github.com/khanghh/vbs/model"
)

type APIResponse struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type LockoutResponse struct {
	OK               bool `json:"ok"`
	Locked           bool `json:"locked"`
	RemainingSeconds int  `json:"remainingSeconds"`
}

type TokenRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type TokenResponse struct {
	OK          bool      `json:"ok"`
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

// UserInfo sends the snowflake id as a string so javascript clients keep
// every digit.
type UserInfo struct {
	UserID   string     `json:"userId"`
	Email    string     `json:"email"`
	FullName string     `json:"fullName"`
	Role     model.Role `json:"role"`
}

type LockedResponse struct {
	OK               bool   `json:"ok"`
	Error            string `json:"error"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

func NewDataResponse(data any) APIResponse {
	return APIResponse{OK: true, Data: data}
}

func NewErrorResponse(message string) APIResponse {
	return APIResponse{OK: false, Error: message}
}

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type LockoutChecker interface {
	LockoutRemaining(ctx context.Context, email string) (seconds int, locked bool, err error)
}

type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

type StudentLister interface {
	List(ctx context.Context) ([]*model.Student, error)
}

type ScheduleLister interface {
	List(ctx context.Context) ([]*model.ScheduleSession, error)
}

type AttendanceLister interface {
	ListDay(ctx context.Context, day string) ([]*model.Attendance, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]*model.Category, error)
}

type EventLister interface {
	List(ctx context.Context) ([]*model.Event, error)
}

type ReportService interface {
	Summary(ctx context.Context) (*reports.Summary, error)
}

type AuditService interface {
	Recent(ctx context.Context) ([]*model.AuditEntry, error)
}
