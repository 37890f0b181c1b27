package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/identity"
	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/internal/middlewares/csrf"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
	"github.com/khanghh/vbs/internal/render"
	"github.com/khanghh/vbs/internal/users"
)

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginHandler handles sign in and sign out.
type LoginHandler struct {
	authenticator   Authenticator
	settingsService SettingsService
}

func csrfToken(ctx *fiber.Ctx) string {
	session := sessions.Get(ctx)
	if session == nil {
		return ""
	}
	return csrf.Get(session).Token
}

func (h *LoginHandler) renderLogin(ctx *fiber.Ctx, pageData render.LoginPageData) error {
	branding, err := loadBranding(ctx, h.settingsService)
	if err != nil {
		return err
	}
	pageData.Branding = branding
	pageData.CSRFToken = csrfToken(ctx)
	return render.RenderLoginPage(ctx, pageData)
}

func (h *LoginHandler) GetLogin(ctx *fiber.Ctx) error {
	if identity.Current(ctx) != nil {
		return ctx.Redirect("/")
	}
	return h.renderLogin(ctx, render.LoginPageData{
		Msg:      ctx.Query("msg"),
		ErrorMsg: ctx.Query("error"),
	})
}

func (h *LoginHandler) PostLogin(ctx *fiber.Ctx) error {
	if identity.Current(ctx) != nil {
		return ctx.Redirect("/")
	}

	var form LoginForm
	if err := ctx.BodyParser(&form); err != nil {
		return h.renderLogin(ctx, render.LoginPageData{
			ErrorMsg:   MsgInvalidRequest,
			StatusCode: fiber.StatusBadRequest,
		})
	}
	email := normalizeLoginEmail(form.Email)
	pageData := render.LoginPageData{Email: email}

	user, err := h.authenticator.Authenticate(ctx.UserContext(), email, form.Password)
	var lockedErr *lockout.LockedError
	switch {
	case errors.As(err, &lockedErr):
		pageData.ErrorMsg = fmt.Sprintf(MsgLoginLocked, formatDuration(lockedErr.Remaining))
		pageData.StatusCode = fiber.StatusTooManyRequests
		return h.renderLogin(ctx, pageData)
	case errors.Is(err, users.ErrInvalidCredentials):
		pageData.ErrorMsg = MsgLoginWrongCredentials
		pageData.StatusCode = fiber.StatusUnauthorized
		return h.renderLogin(ctx, pageData)
	case err != nil:
		return err
	}

	now := time.Now()
	err = sessions.Reset(ctx, sessions.SessionData{
		IP:        ctx.IP(),
		UserID:    user.ID,
		LoginTime: now,
		LastSeen:  now,
	})
	if err != nil {
		return err
	}
	return ctx.Redirect("/")
}

func (h *LoginHandler) PostLogout(ctx *fiber.Ctx) error {
	if err := sessions.Destroy(ctx); err != nil {
		return err
	}
	return redirect(ctx, "/login", "msg", MsgSignedOut)
}

func NewLoginHandler(authenticator Authenticator, settingsService SettingsService) *LoginHandler {
	return &LoginHandler{
		authenticator:   authenticator,
		settingsService: settingsService,
	}
}
