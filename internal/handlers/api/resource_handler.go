package api

import (
	"github.com/gofiber/fiber/v2"
)

// ResourceHandler serves read-only JSON listings. Every call goes through the
// service layer, which performs the role check.
type ResourceHandler struct {
	students   StudentLister
	schedule   ScheduleLister
	attendance AttendanceLister
	categories CategoryLister
	events     EventLister
	reports    ReportService
	audit      AuditService
}

func sendData[T any](ctx *fiber.Ctx, data T, err error) error {
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(data))
}

func (h *ResourceHandler) GetStudents(ctx *fiber.Ctx) error {
	data, err := h.students.List(ctx.UserContext())
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetSchedule(ctx *fiber.Ctx) error {
	data, err := h.schedule.List(ctx.UserContext())
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetAttendance(ctx *fiber.Ctx) error {
	data, err := h.attendance.ListDay(ctx.UserContext(), ctx.Query("day"))
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetCategories(ctx *fiber.Ctx) error {
	data, err := h.categories.List(ctx.UserContext())
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetEvents(ctx *fiber.Ctx) error {
	data, err := h.events.List(ctx.UserContext())
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetSummary(ctx *fiber.Ctx) error {
	data, err := h.reports.Summary(ctx.UserContext())
	return sendData(ctx, data, err)
}

func (h *ResourceHandler) GetAudit(ctx *fiber.Ctx) error {
	data, err := h.audit.Recent(ctx.UserContext())
	return sendData(ctx, data, err)
}

type ResourceServices struct {
	Students   StudentLister
	Schedule   ScheduleLister
	Attendance AttendanceLister
	Categories CategoryLister
	Events     EventLister
	Reports    ReportService
	Audit      AuditService
}

func NewResourceHandler(s ResourceServices) *ResourceHandler {
	return &ResourceHandler{
		students:   s.Students,
		schedule:   s.Schedule,
		attendance: s.Attendance,
		categories: s.Categories,
		events:     s.Events,
		reports:    s.Reports,
		audit:      s.Audit,
	}
}
