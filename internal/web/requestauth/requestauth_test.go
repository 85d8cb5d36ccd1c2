package requestauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitorOf(t *testing.T, req *http.Request) *Visitor {
	t.Helper()

	var got *Visitor

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromCtx(c)
		Store(c, got)

		if Load(c) != got {
			return fiber.ErrInternalServerError
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.NotNil(t, got)

	return got
}

func TestFromCtx(t *testing.T) {
	tests := []struct {
		name      string
		headers   map[string]string
		cookies   map[string]string
		wantIP    string
		wantUser  string
		wantCRM   string
		wantID    int
		wantAuthN bool
	}{
		{
			name:    "full bundle",
			headers: map[string]string{HeaderRealIP: "10.0.0.1", HeaderForwarded: "10.0.0.2"},
			cookies: map[string]string{
				CookieFirstName: " Alice ",
				CookieLastName:  "Smith",
				CookieEmail:     "alice@example.org",
				CookieCRMID:     "1234567",
				CookieAuth:      "token",
				CookieAuthID:    "42",
			},
			wantIP:    "10.0.0.1",
			wantUser:  "[1234567] asmith",
			wantCRM:   "1234567",
			wantID:    42,
			wantAuthN: true,
		},
		{
			name:    "forwarded ip and alternate crm cookie",
			headers: map[string]string{HeaderForwarded: "10.0.0.2"},
			cookies: map[string]string{
				CookieCRMIDAlt: "999",
				CookieAuth:     "token",
				CookieAuthID:   "1",
			},
			wantIP:    "10.0.0.2",
			wantUser:  "[999] ",
			wantCRM:   "999",
			wantID:    1,
			wantAuthN: true,
		},
		{
			name:     "malformed auth id",
			cookies:  map[string]string{CookieCRMID: "1", CookieAuth: "token", CookieAuthID: "abc"},
			wantUser: "[1] ",
			wantCRM:  "1",
		},
		{
			name:     "no cookies",
			wantUser: "[] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			for k, v := range tt.cookies {
				req.AddCookie(&http.Cookie{Name: k, Value: v})
			}

			got := visitorOf(t, req)

			if tt.wantIP != "" {
				assert.Equal(t, tt.wantIP, got.IP)
			} else {
				assert.NotEmpty(t, got.IP)
			}
			assert.Equal(t, tt.wantUser, got.Username)
			assert.Equal(t, tt.wantCRM, got.CRMID)
			assert.Equal(t, tt.wantID, got.AuthID)
			assert.Equal(t, tt.wantAuthN, got.IsAuthenticated())
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 12, ToInt("12", 0))
	assert.Equal(t, 12, ToInt(" 12 ", 0))
	assert.Equal(t, 5, ToInt("", 5))
	assert.Equal(t, 5, ToInt("x1", 5))
	assert.Equal(t, -3, ToInt("-3", 0))
}
