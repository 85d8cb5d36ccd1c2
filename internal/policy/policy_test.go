package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/authgw/authgw/internal/directory"
)

func profileWith(dn, department string, groupDNs ...string) *directory.Profile {
	p := directory.NewProfile()
	p.DistinguishedName = dn
	p.Department = department
	p.SetGroupDNs(groupDNs)

	return p
}

func TestDefaultPolicy(t *testing.T) {
	p := Default()

	admin := profileWith("CN=A,OU=STAFF,DC=x", "IT", "CN=Django_Superusers,OU=Groups,DC=x")
	assert.True(t, p.Superuser(admin))
	assert.True(t, p.Staff(admin))
	assert.True(t, p.IT(admin))

	plain := profileWith("CN=B,OU=Contractors,DC=x", "Sales", "CN=Users,DC=x")
	assert.False(t, p.Superuser(plain))
	assert.False(t, p.Staff(plain))
	assert.False(t, p.IT(plain))

	// The staff marker is matched literally, including its trailing comma.
	assert.False(t, p.Staff(profileWith("CN=C,OU=STAFF", "")))
	assert.False(t, p.Staff(profileWith("CN=C,ou=staff,DC=x", "")))
	assert.False(t, p.IT(profileWith("", "it")))

	assert.False(t, p.Superuser(nil))
	assert.False(t, p.Staff(nil))
	assert.False(t, p.IT(nil))
}

func TestPolicyOptions(t *testing.T) {
	admins := profileWith("CN=A,DC=x", "Ops", "CN=GW_Admins,DC=x")

	p := New(WithSuperuserGroup("gw_admins"))
	assert.True(t, p.Superuser(admins))
	assert.False(t, p.Superuser(profileWith("", "", "CN=DJANGO_SUPERUSERS,DC=x")))

	p = New(WithIT(func(pr *directory.Profile) bool { return pr.Department == "Ops" }))
	assert.True(t, p.IT(admins))

	p = New(WithStaff(func(*directory.Profile) bool { return true }))
	assert.True(t, p.Staff(admins))

	p = New(WithSuperuser(nil), WithSuperuserGroup(""))
	assert.True(t, p.Superuser(profileWith("", "", "CN=DJANGO_SUPERUSERS,DC=x")))
}

func TestZeroPolicyFallsBackToDefaults(t *testing.T) {
	var p Policy

	assert.True(t, p.IT(profileWith("", "IT")))
	assert.True(t, p.Staff(profileWith("CN=A,OU=STAFF,DC=x", "")))
}
