package store

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is a typed view over a fiber.Storage backend. Values are JSON encoded
// and every key is prefixed so several stores can share one backend.
type Store[T any] interface {
	Storage() fiber.Storage
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Save(ctx context.Context, key string, val T) error
	Delete(ctx context.Context, key string) error
}
