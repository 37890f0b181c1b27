// Package guardtest provides in-memory collaborators for tests that need a
// guard.Guard without a database.
package guardtest

import (
	"context"
	"sync"

	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
)

// Identity returns a fixed session (nil means signed out).
type Identity struct {
	Session *guard.Session
}

func (i *Identity) GetSession(ctx context.Context) (*guard.Session, error) {
	return i.Session, nil
}

// Events resolves to Active, or a NotFoundError when Active is nil.
type Events struct {
	Active *model.Event
	Calls  int
}

func (e *Events) GetActiveEvent(ctx context.Context) (*model.Event, error) {
	e.Calls++
	if e.Active == nil {
		return nil, guard.NewNotFoundError("No active event")
	}
	return e.Active, nil
}

// Scopes maps (kind, id) to the owning event id.
type Scopes struct {
	mu    sync.Mutex
	rows  map[guard.ResourceKind]map[uint]uint
	Calls int
}

func NewScopes() *Scopes {
	return &Scopes{rows: make(map[guard.ResourceKind]map[uint]uint)}
}

func (s *Scopes) Put(kind guard.ResourceKind, id, eventID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows[kind] == nil {
		s.rows[kind] = make(map[uint]uint)
	}
	s.rows[kind][id] = eventID
}

func (s *Scopes) Remove(kind guard.ResourceKind, id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows[kind], id)
}

func (s *Scopes) EventIDOf(ctx context.Context, kind guard.ResourceKind, id uint) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	eventID, ok := s.rows[kind][id]
	return eventID, ok, nil
}

// Session builds a principal with the given role.
func Session(userID uint, role model.Role) *guard.Session {
	return &guard.Session{UserID: userID, Email: "user@example.com", Role: role}
}
