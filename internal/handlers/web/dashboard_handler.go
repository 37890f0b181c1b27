package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/identity"
	"github.com/khanghh/vbs/internal/render"
	"github.com/khanghh/vbs/model"
)

func loadBranding(ctx *fiber.Ctx, settingsService SettingsService) (render.Branding, error) {
	st, err := settingsService.Get(ctx.UserContext())
	if err != nil {
		return render.Branding{}, err
	}
	return render.Branding{
		SiteName:     st.SiteName,
		PrimaryColor: st.PrimaryColor,
		LogoURL:      st.LogoURL,
		ContactEmail: st.ContactEmail,
	}, nil
}

// DashboardHandler renders the home page. What it loads depends on the
// viewer's role; each service call still runs its own role check.
type DashboardHandler struct {
	services Services
	events   guard.ActiveEventResolver
}

func (h *DashboardHandler) loadEventData(ctx *fiber.Ctx, data *render.HomePageData) error {
	var err error
	c := ctx.UserContext()
	if data.Summary, err = h.services.Reports.Summary(c); err != nil {
		return err
	}
	if data.Students, err = h.services.Students.List(c); err != nil {
		return err
	}
	if data.Schedule, err = h.services.Schedule.List(c); err != nil {
		return err
	}
	data.Attendance, err = h.services.Attendance.ListDay(c, "")
	return err
}

func (h *DashboardHandler) loadAdminData(ctx *fiber.Ctx, data *render.HomePageData) error {
	var err error
	c := ctx.UserContext()
	if data.Events, err = h.services.Events.List(c); err != nil {
		return err
	}
	data.Users, err = h.services.Users.List(c)
	return err
}

func (h *DashboardHandler) GetHome(ctx *fiber.Ctx) error {
	sess := identity.Current(ctx)
	if sess == nil {
		return redirect(ctx, "/login")
	}

	branding, err := loadBranding(ctx, h.services.Settings)
	if err != nil {
		return err
	}
	data := render.HomePageData{
		Branding:  branding,
		CSRFToken: csrfToken(ctx),
		Email:     sess.Email,
		Role:      sess.Role,
		Msg:       ctx.Query("msg"),
		ErrorMsg:  ctx.Query("error"),
	}

	event, err := h.events.GetActiveEvent(ctx.UserContext())
	switch {
	case err == nil:
		data.Event = event
		if err := h.loadEventData(ctx, &data); err != nil {
			return err
		}
	case !errors.Is(err, guard.ErrNotFound):
		return err
	}

	if data.Categories, err = h.services.Categories.List(ctx.UserContext()); err != nil {
		return err
	}
	if sess.Role.AtLeast(model.RoleAdmin) {
		if err := h.loadAdminData(ctx, &data); err != nil {
			return err
		}
	}
	return render.RenderHomePage(ctx, data)
}

func NewDashboardHandler(services Services, events guard.ActiveEventResolver) *DashboardHandler {
	return &DashboardHandler{
		services: services,
		events:   events,
	}
}
