package render

import (
	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/model"
)

func send(ctx *fiber.Ctx, status int, body string) error {
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(status).SendString(body)
}

func RenderLoginPage(ctx *fiber.Ctx, data LoginPageData) error {
	body, err := RenderHTML("login", fiber.Map{
		"branding":  data.Branding,
		"csrfToken": data.CSRFToken,
		"email":     data.Email,
		"msg":       data.Msg,
		"errorMsg":  data.ErrorMsg,
	})
	if err != nil {
		return err
	}
	statusCode := data.StatusCode
	if statusCode == 0 {
		statusCode = fiber.StatusOK
	}
	return send(ctx, statusCode, body)
}

func RenderHomePage(ctx *fiber.Ctx, data HomePageData) error {
	body, err := RenderHTML("home", fiber.Map{
		"branding":   data.Branding,
		"csrfToken":  data.CSRFToken,
		"email":      data.Email,
		"role":       data.Role.String(),
		"isStaff":    data.Role.AtLeast(model.RoleStaff),
		"isAdmin":    data.Role.AtLeast(model.RoleAdmin),
		"msg":        data.Msg,
		"errorMsg":   data.ErrorMsg,
		"event":      data.Event,
		"summary":    data.Summary,
		"students":   data.Students,
		"schedule":   data.Schedule,
		"attendance": data.Attendance,
		"categories": data.Categories,
		"events":     data.Events,
		"users":      data.Users,
	})
	if err != nil {
		return err
	}
	return send(ctx, fiber.StatusOK, body)
}

// RenderErrorPage shows message with status. message must already be safe
// for the user to read.
func RenderErrorPage(ctx *fiber.Ctx, status int, message string) error {
	body, err := RenderHTML("error", fiber.Map{
		"status":  status,
		"message": message,
	})
	if err != nil {
		return err
	}
	return send(ctx, status, body)
}
