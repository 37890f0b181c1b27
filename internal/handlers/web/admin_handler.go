package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/categories"
	"github.com/khanghh/vbs/internal/events"
	"github.com/khanghh/vbs/internal/settings"
)

type EventForm struct {
	Year      int    `form:"year"`
	Theme     string `form:"theme"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type CategoryForm struct {
	Name     string `form:"name"`
	Color    string `form:"color"`
	MinGrade int    `form:"minGrade"`
	MaxGrade int    `form:"maxGrade"`
}

type SettingsForm struct {
	SiteName     string `form:"siteName"`
	PrimaryColor string `form:"primaryColor"`
	LogoURL      string `form:"logoUrl"`
	ContactEmail string `form:"contactEmail"`
}

// AdminHandler serves the administrator forms.
type AdminHandler struct {
	eventService    EventService
	categoryService CategoryService
	userService     UserService
	settingsService SettingsService
}

func (h *AdminHandler) PostCreateEvent(ctx *fiber.Ctx) error {
	var form EventForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	_, err := h.eventService.Create(ctx.UserContext(), events.EventInput(form))
	return finishAction(ctx, err, MsgEventCreated)
}

func (h *AdminHandler) PostUpdateEvent(ctx *fiber.Ctx) error {
	var form EventForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	err := h.eventService.Update(ctx.UserContext(), ctx.Params("id"), events.EventInput(form))
	return finishAction(ctx, err, MsgEventUpdated)
}

func (h *AdminHandler) PostActivateEvent(ctx *fiber.Ctx) error {
	err := h.eventService.SetActive(ctx.UserContext(), ctx.Params("id"))
	return finishAction(ctx, err, MsgEventActivated)
}

func (h *AdminHandler) PostDeleteEvent(ctx *fiber.Ctx) error {
	err := h.eventService.Delete(ctx.UserContext(), ctx.Params("id"))
	return finishAction(ctx, err, MsgEventDeleted)
}

func (h *AdminHandler) PostCreateCategory(ctx *fiber.Ctx) error {
	var form CategoryForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	_, err := h.categoryService.Create(ctx.UserContext(), categories.CategoryInput(form))
	return finishAction(ctx, err, MsgCategoryCreated)
}

func (h *AdminHandler) PostUpdateCategory(ctx *fiber.Ctx) error {
	var form CategoryForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	err := h.categoryService.Update(ctx.UserContext(), ctx.Params("id"), categories.CategoryInput(form))
	return finishAction(ctx, err, MsgCategoryUpdated)
}

func (h *AdminHandler) PostDeleteCategory(ctx *fiber.Ctx) error {
	err := h.categoryService.Delete(ctx.UserContext(), ctx.Params("id"))
	return finishAction(ctx, err, MsgCategoryDeleted)
}

func (h *AdminHandler) PostChangeRole(ctx *fiber.Ctx) error {
	err := h.userService.ChangeRole(ctx.UserContext(), ctx.Params("id"), ctx.FormValue("role"))
	return finishAction(ctx, err, MsgRoleChanged)
}

func (h *AdminHandler) PostUpdateSettings(ctx *fiber.Ctx) error {
	var form SettingsForm
	if err := ctx.BodyParser(&form); err != nil {
		return redirect(ctx, "/", "error", MsgInvalidRequest)
	}
	_, err := h.settingsService.Update(ctx.UserContext(), settings.SettingsInput(form))
	return finishAction(ctx, err, MsgSettingsSaved)
}

func NewAdminHandler(eventService EventService, categoryService CategoryService, userService UserService, settingsService SettingsService) *AdminHandler {
	return &AdminHandler{
		eventService:    eventService,
		categoryService: categoryService,
		userService:     userService,
		settingsService: settingsService,
	}
}
