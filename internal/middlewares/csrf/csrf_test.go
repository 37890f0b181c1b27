package csrf

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
	"github.com/khanghh/vbs/internal/store"
	"github.com/stretchr/testify/require"
)

func newCSRFApp() *fiber.App {
	app := fiber.New()
	app.Use(sessions.New(sessions.Config{Storage: store.NewMemoryStorage()}))
	app.Use(New(Config{ExcludePaths: []string{"/api/*"}}))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(Get(sessions.Get(ctx)).Token)
	})
	app.Post("/students", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Post("/api/token", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func fetchToken(t *testing.T, app *fiber.App) (token, cookie string) {
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	for _, c := range resp.Cookies() {
		if c.Name == "vbs_sid" {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie)
	return string(body), cookie
}

func post(t *testing.T, app *fiber.App, path, cookie string, form url.Values, header string) int {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if header != "" {
		req.Header.Set(CSRFHeader, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCSRFRejectsMissingToken(t *testing.T) {
	app := newCSRFApp()
	_, cookie := fetchToken(t, app)

	require.Equal(t, fiber.StatusForbidden, post(t, app, "/students", cookie, nil, ""))
	require.Equal(t, fiber.StatusForbidden, post(t, app, "/students", cookie, url.Values{CSRFFormField: {"forged"}}, ""))
	require.Equal(t, fiber.StatusForbidden, post(t, app, "/students", "", nil, ""))
}

func TestCSRFAcceptsSessionToken(t *testing.T) {
	app := newCSRFApp()
	token, cookie := fetchToken(t, app)

	require.Equal(t, fiber.StatusOK, post(t, app, "/students", cookie, url.Values{CSRFFormField: {token}}, ""))
	require.Equal(t, fiber.StatusOK, post(t, app, "/students", cookie, nil, token))
}

func TestCSRFExcludedPath(t *testing.T) {
	app := newCSRFApp()
	require.Equal(t, fiber.StatusOK, post(t, app, "/api/token", "", nil, ""))
}
