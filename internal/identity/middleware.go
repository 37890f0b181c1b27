package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
	"github.com/khanghh/vbs/internal/users"
	"github.com/khanghh/vbs/model"
)

type UserLookup interface {
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
}

func bearerToken(ctx *fiber.Ctx) string {
	auth := ctx.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// resolveUserID prefers a bearer token over the session cookie. A bad token
// leaves the request anonymous.
func resolveUserID(ctx *fiber.Ctx, tokens *TokenProvider) (uint, *sessions.Session) {
	if raw := bearerToken(ctx); raw != "" {
		claims, err := tokens.Parse(raw)
		if err != nil {
			slog.Debug("Rejected bearer token", "ip", ctx.IP(), "error", err)
			return 0, nil
		}
		userID, err := claims.UserID()
		if err != nil {
			return 0, nil
		}
		return userID, nil
	}
	if session := sessions.Get(ctx); session != nil && session.IsLoggedIn() {
		return session.UserID, session
	}
	return 0, nil
}

// Middleware loads the signed-in user and stores a guard.Session in the
// request's user context. Role and disabled flag always come from the
// database so a demotion applies on the next request.
func Middleware(userLookup UserLookup, tokens *TokenProvider) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, session := resolveUserID(ctx, tokens)
		if userID == 0 {
			return ctx.Next()
		}

		user, err := userLookup.GetUserByID(ctx.UserContext(), userID)
		if err != nil && !errors.Is(err, users.ErrUserNotFound) {
			return err
		}
		if err != nil || user.Disabled {
			if session != nil {
				session.Save(sessions.SessionData{})
			}
			return ctx.Next()
		}

		ctx.SetUserContext(guard.WithSession(ctx.UserContext(), &guard.Session{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}))
		return ctx.Next()
	}
}

// Current returns the principal resolved by Middleware, or nil.
func Current(ctx *fiber.Ctx) *guard.Session {
	return guard.SessionFromContext(ctx.UserContext())
}
