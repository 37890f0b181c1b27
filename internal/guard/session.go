package guard

import (
	"context"

	"github.com/khanghh/vbs/model"
)

// Session is the authenticated principal for one request.
type Session struct {
	UserID uint
	Email  string
	Role   model.Role
}

// IdentityProvider returns the current principal, or nil when the request is
// unauthenticated.
type IdentityProvider interface {
	GetSession(ctx context.Context) (*Session, error)
}

type sessionContextKey struct{}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// ContextProvider reads the principal stored by WithSession.
type ContextProvider struct{}

func (ContextProvider) GetSession(ctx context.Context) (*Session, error) {
	return SessionFromContext(ctx), nil
}
