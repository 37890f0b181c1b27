package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

type store[T any] struct {
	storage fiber.Storage
	prefix  string
}

func (s *store[T]) Storage() fiber.Storage {
	return s.storage
}

func (s *store[T]) Get(ctx context.Context, key string) (T, error) {
	var obj T
	raw, err := s.storage.Get(s.prefix + key)
	if err != nil {
		return obj, err
	}
	if len(raw) == 0 {
		return obj, ErrNotFound
	}
	err = json.Unmarshal(raw, &obj)
	return obj, err
}

// Set stores val under key. A non-positive expiresIn keeps the value until deleted.
func (s *store[T]) Set(ctx context.Context, key string, val T, expiresIn time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if expiresIn < 0 {
		expiresIn = 0
	}
	return s.storage.Set(s.prefix+key, raw, expiresIn)
}

func (s *store[T]) Save(ctx context.Context, key string, val T) error {
	return s.Set(ctx, key, val, 0)
}

func (s *store[T]) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(s.prefix + key)
}

func New[T any](storage fiber.Storage, keyPrefix string) Store[T] {
	return &store[T]{
		storage: storage,
		prefix:  keyPrefix,
	}
}
