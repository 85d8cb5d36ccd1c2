// Package policy decides the administrative flags of a directory user.
package policy

import (
	"strings"

	"github.com/authgw/authgw/internal/directory"
)

const (
	// DefaultSuperuserGroup is the group whose members become superusers.
	DefaultSuperuserGroup = "DJANGO_SUPERUSERS"
	// StaffMarker is the DN fragment that marks staff accounts.
	StaffMarker = "OU=STAFF,"
	// ITDepartment is the department value of IT staff.
	ITDepartment = "IT"
)

// Check is a predicate over a directory profile.
type Check func(*directory.Profile) bool

// Policy holds the three predicates. Each one can be replaced per deployment.
type Policy struct {
	IsSuperuser Check
	IsStaff     Check
	IsIT        Check
}

// Option changes one predicate of a Policy.
type Option func(*Policy)

// WithSuperuserGroup makes members of group superusers instead of DefaultSuperuserGroup.
func WithSuperuserGroup(group string) Option {
	return func(p *Policy) {
		if strings.TrimSpace(group) != "" {
			p.IsSuperuser = superuserOf(group)
		}
	}
}

// WithSuperuser replaces the superuser predicate.
func WithSuperuser(check Check) Option {
	return func(p *Policy) { p.IsSuperuser = check }
}

// WithStaff replaces the staff predicate.
func WithStaff(check Check) Option {
	return func(p *Policy) { p.IsStaff = check }
}

// WithIT replaces the IT predicate.
func WithIT(check Check) Option {
	return func(p *Policy) { p.IsIT = check }
}

// Default returns the stock policy.
func Default() Policy {
	return Policy{
		IsSuperuser: superuserOf(DefaultSuperuserGroup),
		IsStaff:     isStaff,
		IsIT:        isIT,
	}
}

// New returns Default with opts applied. Options that set a nil predicate keep the default one.
func New(opts ...Option) Policy {
	p := Default()

	for _, opt := range opts {
		opt(&p)
	}

	return p.withDefaults()
}

// Superuser evaluates IsSuperuser; a nil profile is never privileged.
func (p Policy) Superuser(profile *directory.Profile) bool {
	return profile != nil && p.withDefaults().IsSuperuser(profile)
}

// Staff evaluates IsStaff.
func (p Policy) Staff(profile *directory.Profile) bool {
	return profile != nil && p.withDefaults().IsStaff(profile)
}

// IT evaluates IsIT.
func (p Policy) IT(profile *directory.Profile) bool {
	return profile != nil && p.withDefaults().IsIT(profile)
}

func (p Policy) withDefaults() Policy {
	d := Default()

	if p.IsSuperuser == nil {
		p.IsSuperuser = d.IsSuperuser
	}

	if p.IsStaff == nil {
		p.IsStaff = d.IsStaff
	}

	if p.IsIT == nil {
		p.IsIT = d.IsIT
	}

	return p
}

func superuserOf(group string) Check {
	return func(profile *directory.Profile) bool {
		return profile.HasGroup(group)
	}
}

func isStaff(profile *directory.Profile) bool {
	return strings.Contains(profile.DistinguishedName, StaffMarker)
}

func isIT(profile *directory.Profile) bool {
	return profile.Department == ITDepartment
}
