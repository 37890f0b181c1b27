package store

import (
	"time"

	"github.com/gofiber/storage/memory/v2"
)

// NewMemoryStorage returns a process-local storage. State is lost on restart.
func NewMemoryStorage() *memory.Storage {
	return memory.New(memory.Config{
		GCInterval: 10 * time.Second,
	})
}
