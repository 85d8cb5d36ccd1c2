// Package requestauth reads the identity cookie bundle set by the upstream login service
// (or by the development login form) from a request.
package requestauth

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Cookie names of the identity bundle.
const (
	CookieFirstName  = "first_name"
	CookieLastName   = "last_name"
	CookieEmail      = "email"
	CookieCRMID      = "cpid"
	CookieCRMIDAlt   = "sm_constitid"
	CookieAuth       = "ERIGHTS"
	CookieAuthID     = "emeta_id"
	HeaderRealIP     = "X-Real-IP"
	HeaderForwarded  = "X-Forwarded-For"
	localsVisitorKey = "visitor"
)

// BundleCookies lists every cookie of the bundle, e.g. for clearing them on logout.
var BundleCookies = []string{
	CookieFirstName,
	CookieLastName,
	CookieEmail,
	CookieCRMID,
	CookieAuth,
	CookieAuthID,
}

// Visitor is what the request tells about its sender.
type Visitor struct {
	IP         string
	FirstName  string
	LastName   string
	Email      string
	Username   string
	AuthCookie string
	AuthID     int
	CRMID      string
}

// FromCtx builds the Visitor of the current request.
func FromCtx(c *fiber.Ctx) *Visitor {
	v := &Visitor{
		IP:         clientIP(c),
		FirstName:  c.Cookies(CookieFirstName),
		LastName:   c.Cookies(CookieLastName),
		Email:      c.Cookies(CookieEmail),
		AuthCookie: c.Cookies(CookieAuth),
		AuthID:     ToInt(c.Cookies(CookieAuthID), 0),
		CRMID:      c.Cookies(CookieCRMID),
	}

	if v.CRMID == "" {
		v.CRMID = c.Cookies(CookieCRMIDAlt)
	}

	v.Username = username(v.CRMID, v.FirstName, v.LastName)

	return v
}

// IsAuthenticated requires the auth cookie, a non-zero auth id and a CRM id.
func (v *Visitor) IsAuthenticated() bool {
	return v.AuthCookie != "" && v.AuthID != 0 && v.CRMID != ""
}

// Store puts v into the request locals.
func Store(c *fiber.Ctx, v *Visitor) {
	c.Locals(localsVisitorKey, v)
}

// Load returns the visitor stored by Store, or nil.
func Load(c *fiber.Ctx) *Visitor {
	v, _ := c.Locals(localsVisitorKey).(*Visitor)

	return v
}

// ToInt converts value leniently; empty or malformed input yields def.
func ToInt(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("value", value).Int("default", def).Msg("cannot convert value to int, using default")

		return def
	}

	return n
}

// username is "[<crm>] " followed by the first initial and the last name, lowercased.
func username(crmID, first, last string) string {
	var b strings.Builder

	b.WriteString("[" + crmID + "] ")

	if first = strings.ToLower(strings.TrimSpace(first)); first != "" {
		r := []rune(first)
		b.WriteString(string(r[:1]))
	}

	if last = strings.ToLower(strings.TrimSpace(last)); last != "" {
		b.WriteString(last)
	}

	return b.String()
}

func clientIP(c *fiber.Ctx) string {
	if ip := c.Get(HeaderRealIP); ip != "" {
		return ip
	}

	if ip := c.Get(HeaderForwarded); ip != "" {
		return ip
	}

	return c.Context().RemoteIP().String()
}
