package render

import (
	"github.com/khanghh/vbs/internal/reports"
	"github.com/khanghh/vbs/model"
)

type Branding struct {
	SiteName     string
	PrimaryColor string
	LogoURL      string
	ContactEmail string
}

type LoginPageData struct {
	Branding   Branding
	CSRFToken  string
	Email      string
	Msg        string
	ErrorMsg   string
	StatusCode int
}

// HomePageData is the dashboard. Lists the viewer may not see stay nil.
type HomePageData struct {
	Branding   Branding
	CSRFToken  string
	Email      string
	Role       model.Role
	Msg        string
	ErrorMsg   string
	Event      *model.Event
	Summary    *reports.Summary
	Students   []*model.Student
	Schedule   []*model.ScheduleSession
	Attendance []*model.Attendance
	Categories []*model.Category
	Events     []*model.Event
	Users      []*model.User
}
