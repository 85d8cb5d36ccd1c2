package directory

import (
	"strings"

	"github.com/rs/zerolog"
)

const (
	cnPrefix      = "CN="
	ouPrefix      = "OU="
	officesMarker = "OU=OFFICES"
)

// Profile holds the normalized attributes of a directory user entry.
// Absent attributes are empty strings.
type Profile struct {
	// DistinguishedName is the full path of the entry; office and staff checks derive from it.
	DistinguishedName string
	// CommonName is the cn attribute.
	CommonName string
	// GivenName is the givenName attribute.
	GivenName string
	// Surname is the sn attribute.
	Surname string
	// Email is the mail attribute.
	Email string
	// Department is the department attribute.
	Department string
	// Title is the title attribute.
	Title string
	// ManagerDN is the manager attribute.
	ManagerDN string
	// Login is the account identifier (sAMAccountName or uid).
	Login string
	// CountryCode is the c attribute.
	CountryCode string
	// StateCode is the st attribute.
	StateCode string
	// City is the l attribute.
	City string
	// IsAuthenticated is only set after a bind that verified the user's own password.
	IsAuthenticated bool

	groupDNs []string
	groups   []string
}

// ProfileFactory constructs the empty profile a client fills in.
type ProfileFactory func() *Profile

// NewProfile returns an empty, unauthenticated profile.
func NewProfile() *Profile {
	return &Profile{}
}

// SetGroupDNs replaces the raw membership DNs and recomputes the derived group names.
func (p *Profile) SetGroupDNs(groupDNs []string) {
	p.groupDNs = append([]string(nil), groupDNs...)
	p.groups = p.groups[:0]

	seen := make(map[string]struct{}, len(groupDNs))

	for _, dn := range groupDNs {
		name := GroupName(dn)
		if name == "" {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		p.groups = append(p.groups, name)
	}
}

// GroupDNs returns the raw membership DNs in directory order.
func (p *Profile) GroupDNs() []string {
	return append([]string(nil), p.groupDNs...)
}

// Groups returns the uppercased group common names derived from GroupDNs.
func (p *Profile) Groups() []string {
	return append([]string(nil), p.groups...)
}

// HasGroup reports whether name (compared uppercased) is one of the derived groups.
func (p *Profile) HasGroup(name string) bool {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, g := range p.groups {
		if g == name {
			return true
		}
	}

	return false
}

// Office returns the OU immediately preceding the first OU=OFFICES component of the DN,
// or "" when there is none.
func (p *Profile) Office() string {
	if p.DistinguishedName == "" {
		return ""
	}

	var previous string

	for _, part := range strings.Split(p.DistinguishedName, ",") {
		part = strings.TrimSpace(part)
		if len(part) < len(ouPrefix) || !strings.EqualFold(part[:len(ouPrefix)], ouPrefix) {
			continue
		}

		if strings.EqualFold(part, officesMarker) {
			return previous
		}

		previous = part[len(ouPrefix):]
	}

	return ""
}

// MarshalZerologObject logs the profile without any credential material.
func (p *Profile) MarshalZerologObject(e *zerolog.Event) {
	e.Str("dn", p.DistinguishedName).
		Str("login", p.Login).
		Str("email", p.Email).
		Str("department", p.Department).
		Strs("groups", p.groups).
		Bool("authenticated", p.IsAuthenticated)
}

// GroupName extracts the uppercased common name from a group DN,
// e.g. "CN=Admins,OU=Groups,DC=x" becomes "ADMINS".
func GroupName(groupDN string) string {
	name := groupDN
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}

	name = strings.ToUpper(strings.TrimSpace(name))

	return strings.TrimSpace(strings.TrimPrefix(name, cnPrefix))
}
