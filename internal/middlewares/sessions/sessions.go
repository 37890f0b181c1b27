package sessions

import (
	"crypto/rand"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionContextKey = "session"
	sessionDataKey    = "data"
)

func init() {
	gob.Register(SessionData{})
}

type SessionData struct {
	IP        string    // client ip address
	UserID    uint      // signed in user id
	LoginTime time.Time // last login time
	LastSeen  time.Time // last request time
}

func (s *SessionData) IsLoggedIn() bool {
	return s.UserID != 0
}

type Session struct {
	*session.Session
	SessionData
}

func (s *Session) Save(data ...SessionData) {
	if len(data) > 0 {
		s.SessionData = data[0]
	}
	s.Set(sessionDataKey, s.SessionData)
}

// Reset issues a new session id, which also drops the csrf token.
func (s *Session) Reset(data ...SessionData) error {
	if err := s.Session.Reset(); err != nil {
		return err
	}
	s.SessionData = SessionData{}
	if len(data) > 0 {
		s.SessionData = data[0]
	}
	s.Set(sessionDataKey, s.SessionData)
	return nil
}

func (s *Session) Destroy() error {
	s.SessionData = SessionData{}
	return s.Session.Destroy()
}

func newSession(sess *session.Session) *Session {
	data, _ := sess.Get(sessionDataKey).(SessionData)
	return &Session{
		Session:     sess,
		SessionData: data,
	}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Could not generate session id", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}

// Get returns the request session, or nil outside the sessions middleware.
func Get(ctx *fiber.Ctx) *Session {
	sess, _ := ctx.Locals(sessionContextKey).(*Session)
	return sess
}

func Destroy(ctx *fiber.Ctx) error {
	if sess := Get(ctx); sess != nil {
		return sess.Destroy()
	}
	return nil
}

// Reset rotates the session id and stores data in the new session. Called on
// sign in to prevent session fixation.
func Reset(ctx *fiber.Ctx, data SessionData) error {
	sess := Get(ctx)
	if sess == nil {
		return fmt.Errorf("sessions middleware not installed")
	}
	return sess.Reset(data)
}

type Config struct {
	Storage        fiber.Storage
	SessionMaxAge  time.Duration
	CookieSecure   bool
	CookieHttpOnly bool
	CookieName     string
}

func New(config Config) fiber.Handler {
	if config.CookieName == "" {
		config.CookieName = "vbs_sid"
	}
	if config.SessionMaxAge <= 0 {
		config.SessionMaxAge = 24 * time.Hour
	}
	store := session.New(session.Config{
		Storage:        config.Storage,
		Expiration:     config.SessionMaxAge,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: config.CookieHttpOnly,
		CookieSameSite: "Lax",
		KeyLookup:      fmt.Sprintf("cookie:%s", config.CookieName),
		KeyGenerator:   generateSessionID,
	})

	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		session := newSession(sess)
		ctx.Locals(sessionContextKey, session)
		if err := ctx.Next(); err != nil {
			return err
		}

		if len(session.Keys()) > 0 {
			if data := session.SessionData; data != (SessionData{}) {
				data.LastSeen = time.Now()
				sess.Set(sessionDataKey, data)
			}
			return sess.Save()
		}
		return nil
	}
}
