package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/schedule"
	"github.com/khanghh/vbs/internal/students"
)

type StudentForm struct {
	FirstName     string `form:"firstName"`
	LastName      string `form:"lastName"`
	Grade         int    `form:"grade"`
	BirthDate     string `form:"birthDate"`
	CategoryID    string `form:"categoryId"`
	GuardianName  string `form:"guardianName"`
	GuardianPhone string `form:"guardianPhone"`
	GuardianEmail string `form:"guardianEmail"`
	Allergies     string `form:"allergies"`
	MedicalNotes  string `form:"medicalNotes"`
	PhotoConsent  bool   `form:"photoConsent"`
}

func (f StudentForm) input() students.StudentInput {
	return students.StudentInput{
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Grade:         f.Grade,
		BirthDate:     f.BirthDate,
		CategoryID:    f.CategoryID,
		GuardianName:  f.GuardianName,
		GuardianPhone: f.GuardianPhone,
		GuardianEmail: f.GuardianEmail,
		Allergies:     f.Allergies,
		MedicalNotes:  f.MedicalNotes,
		PhotoConsent:  f.PhotoConsent,
	}
}

type SessionForm struct {
	Title      string `form:"title"`
	Location   string `form:"location"`
	Day        string `form:"day"`
	StartTime  string `form:"startTime"`
	EndTime    string `form:"endTime"`
	CategoryID string `form:"categoryId"`
}

// RosterHandler serves the staff forms: students, schedule and attendance.
type RosterHandler struct {
	studentService    StudentService
	scheduleService   ScheduleService
	attendanceService AttendanceService
}

func (h *RosterHandler) PostCreateStudent(ctx *fiber.Ctx) error {
	var form StudentForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	_, err := h.studentService.Create(ctx.UserContext(), form.input())
	return finishAction(ctx, err, MsgStudentRegistered)
}

func (h *RosterHandler) PostUpdateStudent(ctx *fiber.Ctx) error {
	var form StudentForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	err := h.studentService.Update(ctx.UserContext(), ctx.Params("id"), form.input())
	return finishAction(ctx, err, MsgStudentUpdated)
}

func (h *RosterHandler) PostDeleteStudent(ctx *fiber.Ctx) error {
	err := h.studentService.Delete(ctx.UserContext(), ctx.Params("id"))
	return finishAction(ctx, err, MsgStudentDeleted)
}

func (h *RosterHandler) PostCreateSession(ctx *fiber.Ctx) error {
	var form SessionForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	_, err := h.scheduleService.Create(ctx.UserContext(), schedule.SessionInput(form))
	return finishAction(ctx, err, MsgSessionCreated)
}

func (h *RosterHandler) PostDeleteSession(ctx *fiber.Ctx) error {
	err := h.scheduleService.Delete(ctx.UserContext(), ctx.Params("id"))
	return finishAction(ctx, err, MsgSessionDeleted)
}

func (h *RosterHandler) PostCheckIn(ctx *fiber.Ctx) error {
	_, err := h.attendanceService.CheckIn(ctx.UserContext(), ctx.FormValue("studentId"))
	return finishAction(ctx, err, MsgCheckedIn)
}

func (h *RosterHandler) PostCheckOut(ctx *fiber.Ctx) error {
	err := h.attendanceService.CheckOut(ctx.UserContext(), ctx.Params("id"), ctx.FormValue("pickupBy"))
	return finishAction(ctx, err, MsgCheckedOut)
}

func NewRosterHandler(studentService StudentService, scheduleService ScheduleService, attendanceService AttendanceService) *RosterHandler {
	return &RosterHandler{
		studentService:    studentService,
		scheduleService:   scheduleService,
		attendanceService: attendanceService,
	}
}
