package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
)

func redirect(ctx *fiber.Ctx, location string, values ...any) error {
	url, err := url.Parse(location)
	if err != nil {
		return err
	}

	query := url.Query()
	for i := 0; i+1 < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			slog.Error("invalid query parameter", "key", i)
			continue
		}
		if v := values[i+1]; v != nil {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			query.Set(key, fmt.Sprint(values[i+1]))
		}
	}

	url.RawQuery = query.Encode()
	return ctx.Redirect(url.String())
}

func forceLogout(ctx *fiber.Ctx, errMsg string) error {
	sessions.Destroy(ctx)
	return redirect(ctx, "/login", "error", errMsg)
}

// finishAction redirects back to the dashboard after a form post. Client
// errors are shown as a banner, a missing session goes to the login page and
// anything else is left to the error handler.
func finishAction(ctx *fiber.Ctx, err error, successMsg string) error {
	switch {
	case err == nil:
		return redirect(ctx, "/", "msg", successMsg)
	case errors.Is(err, guard.ErrAuthentication):
		return forceLogout(ctx, MsgLoginSessionExpired)
	case guard.IsClientError(err):
		return redirect(ctx, "/", "error", err.Error())
	default:
		return err
	}
}
