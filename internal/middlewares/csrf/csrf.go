package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/gob"
	"encoding/hex"
	"path"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
	"github.com/khanghh/vbs/params"
)

const (
	CSRFTokenSessionKey = "_csrf"
	CSRFFormField       = "_csrf"
	CSRFHeader          = "X-CSRF-Token"
)

type CSRF struct {
	Token     string
	ExpiresAt time.Time
}

func init() {
	gob.Register(CSRF{})
}

// Get returns the session's token, issuing one when missing or expired.
func Get(session *sessions.Session) CSRF {
	csrf, ok := session.Get(CSRFTokenSessionKey).(CSRF)
	if !ok || time.Now().After(csrf.ExpiresAt) {
		csrf = generateCSRF()
		session.Set(CSRFTokenSessionKey, csrf)
	}
	return csrf
}

func Verify(ctx *fiber.Ctx) bool {
	token := ctx.Get(CSRFHeader)
	if token == "" && ctx.Method() == fiber.MethodPost {
		token = ctx.FormValue(CSRFFormField)
	}
	session := sessions.Get(ctx)
	if token == "" || session == nil {
		return false
	}
	csrf, ok := session.Get(CSRFTokenSessionKey).(CSRF)
	if !ok || time.Now().After(csrf.ExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(csrf.Token), []byte(token)) == 1
}

func randomToken() string {
	const tokenLength = 32
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate CSRF token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func generateCSRF() CSRF {
	return CSRF{
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(params.CSRFTokenExpiration),
	}
}

type Config struct {
	ExcludePaths []string
}

func isSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

// New makes sure every session has a token and rejects state-changing
// requests that do not echo it back. Must run after the sessions middleware.
func New(config Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		for _, p := range config.ExcludePaths {
			if ok, _ := path.Match(p, ctx.Path()); ok {
				return ctx.Next()
			}
		}
		if !isSafeMethod(ctx.Method()) && !Verify(ctx) {
			return fiber.ErrForbidden
		}
		Get(sessions.Get(ctx))
		return ctx.Next()
	}
}
