package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication required")
	ErrAuthorization  = errors.New("not permitted")
	ErrNotFound       = errors.New("not found")
)

// ValidationError reports malformed client input. Message is safe to show.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// AuthenticationError means there is no signed-in principal.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// AuthorizationError covers both an insufficient role and a resource outside
// the caller's event. The message never says which.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func (e *AuthorizationError) Is(target error) bool { return target == ErrAuthorization }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func NewAuthenticationError() error {
	return &AuthenticationError{Message: "You must sign in to continue."}
}

func NewAuthorizationError(msg string) error {
	if msg == "" {
		msg = "You do not have permission to do that."
	}
	return &AuthorizationError{Message: msg}
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Message: msg}
}

// IsClientError reports whether err belongs to the guard taxonomy and its
// message may be shown to the user.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrAuthorization) ||
		errors.Is(err, ErrNotFound)
}

// StatusCode maps err to the HTTP status used at the request boundary.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage returns the text to show for err. Internal errors get a
// generic message.
func PublicMessage(err error) string {
	if IsClientError(err) {
		return err.Error()
	}
	return "Something went wrong. Please try again."
}
