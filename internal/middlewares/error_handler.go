package middlewares

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/render"
)

func isAPIRequest(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(ctx.Path(), "/api/") || ctx.Path() == "/api"
}

// ErrorHandler turns errors returned by handlers into a response. Only
// messages from the guard taxonomy or a *fiber.Error reach the client.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := guard.StatusCode(err)
	message := guard.PublicMessage(err)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "method", ctx.Method(), "path", ctx.Path(), "code", code, "error", err)
		message = guard.PublicMessage(err)
	}

	if isAPIRequest(ctx) {
		return ctx.Status(code).JSON(fiber.Map{"ok": false, "error": message})
	}
	if renderErr := render.RenderErrorPage(ctx, code, message); renderErr != nil {
		slog.Error("Failed to render error page", "error", renderErr)
		return ctx.Status(code).SendString(message)
	}
	return nil
}
