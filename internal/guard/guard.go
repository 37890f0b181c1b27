package guard

import (
	"context"
	"fmt"

	"github.com/khanghh/vbs/model"
)

// ActiveEventResolver returns the single active event or an error.
type ActiveEventResolver interface {
	GetActiveEvent(ctx context.Context) (*model.Event, error)
}

// ScopeLookup returns the id of the event that owns a resource. found is
// false when no row has that id.
type ScopeLookup interface {
	EventIDOf(ctx context.Context, kind ResourceKind, id uint) (eventID uint, found bool, err error)
}

// Guard gates privileged actions. Call order inside an action is
// RequireRole, ValidateID, Verify*Access, then the mutation.
type Guard struct {
	identity IdentityProvider
	events   ActiveEventResolver
	scopes   ScopeLookup
}

// RequireRole returns the current session if its role is at least min.
func (g *Guard) RequireRole(ctx context.Context, min model.Role) (*Session, error) {
	sess, err := g.identity.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, NewAuthenticationError()
	}
	if !sess.Role.AtLeast(min) {
		return nil, NewAuthorizationError("")
	}
	return sess, nil
}

// ActiveEvent exposes the resolver so actions scope reads and creates the
// same way the access checks do.
func (g *Guard) ActiveEvent(ctx context.Context) (*model.Event, error) {
	return g.events.GetActiveEvent(ctx)
}

func (g *Guard) verifyAccess(ctx context.Context, kind ResourceKind, id uint) error {
	// Missing and foreign rows share one message so a guessed id reveals nothing.
	msg := fmt.Sprintf("%s not found.", kind.Label())
	eventID, found, err := g.scopes.EventIDOf(ctx, kind, id)
	if err != nil {
		return err
	}
	if !found {
		return NewNotFoundError(msg)
	}
	active, err := g.events.GetActiveEvent(ctx)
	if err != nil {
		return err
	}
	if eventID != active.ID {
		return NewAuthorizationError(msg)
	}
	return nil
}

func (g *Guard) VerifyStudentAccess(ctx context.Context, id uint) error {
	return g.verifyAccess(ctx, ResourceStudent, id)
}

func (g *Guard) VerifySessionAccess(ctx context.Context, id uint) error {
	return g.verifyAccess(ctx, ResourceScheduleSession, id)
}

func (g *Guard) VerifyAttendanceAccess(ctx context.Context, id uint) error {
	return g.verifyAccess(ctx, ResourceAttendance, id)
}

func New(identity IdentityProvider, events ActiveEventResolver, scopes ScopeLookup) *Guard {
	return &Guard{
		identity: identity,
		events:   events,
		scopes:   scopes,
	}
}
