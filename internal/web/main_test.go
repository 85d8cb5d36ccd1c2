package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgw/authgw/internal/auth"
	"github.com/authgw/authgw/internal/config"
	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/web/session"
)

type staticAuth struct {
	user *models.User
}

func (a staticAuth) Authenticate(username, password string) (auth.Result, error) {
	if a.user != nil && username == a.user.Username && password == "secret" {
		return auth.Result{Outcome: auth.Accepted, User: a.user}, nil
	}

	return auth.Result{Outcome: auth.Deferred}, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{
		Title:     "authgw test",
		Webserver: config.Webserver{CheckAliveURI: "/checkalive"},
		Session:   config.Session{CookieName: "session", ExpiryTime: time.Minute},
		Gateway:   config.Gateway{DefaultTarget: "/"},
	}

	storage, err := session.NewStorage(cfg.Session, cfg.DB)
	require.NoError(t, err)
	session.Init(storage, cfg.Session.ExpiryTime)

	svc, err := New(cfg, staticAuth{user: &models.User{
		ID:        5,
		Username:  "frank",
		FirstName: "Frank",
		LastName:  "Miller",
		Email:     "frank@example.org",
		Active:    true,
	}})
	require.NoError(t, err)

	return svc
}

func call(t *testing.T, svc *Service, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := svc.App.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestCheckAlive(t *testing.T) {
	svc := newTestService(t)

	resp, body := call(t, svc, httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
	assert.True(t, svc.IsAlive())

	svc.alive.Store(false)

	resp, _ = call(t, svc, httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	svc := newTestService(t)

	resp, body := call(t, svc, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "# HELP")
}

func TestStaticFiles(t *testing.T) {
	svc := newTestService(t)

	resp, body := call(t, svc, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".box")
}

func TestLoginFlow(t *testing.T) {
	svc := newTestService(t)

	// anonymous visitors are sent to the login page
	resp, _ := call(t, svc, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?_target=%2F", resp.Header.Get("Location"))

	resp, body := call(t, svc, httptest.NewRequest(http.MethodGet, "/auth/login/?_target=%2F", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="username"`)
	assert.Contains(t, body, `name="target" value="/"`)
	assert.NotContains(t, body, "Development login")

	post := func(password string) (*http.Response, string) {
		form := url.Values{"username": {"frank"}, "password": {password}, "target": {"/"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/login/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return call(t, svc, req)
	}

	resp, body = post("wrong")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")

	resp, _ = post("secret")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var sessionID string

	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			sessionID = c.Value
		}
	}

	require.NotEmpty(t, sessionID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})

	resp, body = call(t, svc, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "frank@example.org")
	assert.Contains(t, body, "Identity from session.")

	req = httptest.NewRequest(http.MethodGet, "/auth/logout/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})

	resp, _ = call(t, svc, req)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})

	resp, _ = call(t, svc, req)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}
