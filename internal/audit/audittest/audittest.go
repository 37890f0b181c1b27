// Package audittest provides an in-memory audit repository.
package audittest

import (
	"context"
	"errors"
	"sync"

	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type Repository struct {
	mu      sync.Mutex
	Entries []*model.AuditEntry
	Fail    bool
}

func (r *Repository) WithTx(tx *gorm.DB) audit.AuditRepository {
	return r
}

func (r *Repository) Create(ctx context.Context, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return errors.New("audit storage unavailable")
	}
	entry.ID = uint64(len(r.Entries) + 1)
	r.Entries = append(r.Entries, entry)
	return nil
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.AuditEntry
	for i := len(r.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.Entries[i])
	}
	return out, nil
}

// Actions lists recorded actions in write order.
func (r *Repository) Actions() []audit.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]audit.Action, 0, len(r.Entries))
	for _, e := range r.Entries {
		actions = append(actions, audit.Action(e.Action))
	}
	return actions
}

func (r *Repository) Last() *model.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Entries) == 0 {
		return nil
	}
	return r.Entries[len(r.Entries)-1]
}
