package api

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/internal/users"
)

// AuthHandler serves the unauthenticated API: health, lockout status and
// bearer token exchange.
type AuthHandler struct {
	authenticator Authenticator
	lockout       LockoutChecker
	tokens        TokenIssuer
}

func (h *AuthHandler) GetHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(APIResponse{OK: true})
}

// GetLockout reports whether an email is locked. Unknown emails lock the same
// way as real ones, so the answer does not reveal whether an account exists.
func (h *AuthHandler) GetLockout(ctx *fiber.Ctx) error {
	seconds, locked, err := h.lockout.LockoutRemaining(ctx.UserContext(), ctx.Query("email"))
	if err != nil {
		return err
	}
	return ctx.JSON(LockoutResponse{
		OK:               true,
		Locked:           locked,
		RemainingSeconds: seconds,
	})
}

func (h *AuthHandler) PostToken(ctx *fiber.Ctx) error {
	var req TokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(NewErrorResponse("Invalid request body."))
	}

	user, err := h.authenticator.Authenticate(ctx.UserContext(), req.Email, req.Password)
	var lockedErr *lockout.LockedError
	switch {
	case errors.As(err, &lockedErr):
		seconds := int(math.Ceil(lockedErr.Remaining.Seconds()))
		return ctx.Status(fiber.StatusTooManyRequests).JSON(LockedResponse{
			Error:            fmt.Sprintf("Account locked. Try again in %d seconds.", seconds),
			RemainingSeconds: seconds,
		})
	case errors.Is(err, users.ErrInvalidCredentials):
		return ctx.Status(fiber.StatusUnauthorized).JSON(NewErrorResponse("Invalid email or password."))
	case err != nil:
		return err
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return ctx.JSON(TokenResponse{
		OK:          true,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: UserInfo{
			UserID:   strconv.FormatUint(uint64(user.ID), 10),
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	})
}

func NewAuthHandler(authenticator Authenticator, lockout LockoutChecker, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		lockout:       lockout,
		tokens:        tokens,
	}
}
