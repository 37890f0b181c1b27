package store

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type prefixedStorage struct {
	fiber.Storage
	prefix string
}

func (p *prefixedStorage) Get(key string) ([]byte, error) {
	return p.Storage.Get(p.prefix + key)
}

func (p *prefixedStorage) Set(key string, val []byte, exp time.Duration) error {
	return p.Storage.Set(p.prefix+key, val, exp)
}

func (p *prefixedStorage) Delete(key string) error {
	return p.Storage.Delete(p.prefix + key)
}

// StorageWithPrefix namespaces keys so sessions, lockout records and limiter
// counters can share one backend. Reset and Close act on the whole backend.
func StorageWithPrefix(storage fiber.Storage, prefix string) fiber.Storage {
	return &prefixedStorage{
		Storage: storage,
		prefix:  prefix,
	}
}
