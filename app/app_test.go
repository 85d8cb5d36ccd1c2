package app

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgw/authgw/internal/db/models"
	"github.com/authgw/authgw/internal/directory"
	"github.com/authgw/authgw/internal/policy"
)

type fakeClient struct {
	profile *directory.Profile
	err     error
}

func (f fakeClient) Bind(_, _ string) (*directory.Profile, error) {
	return f.profile, f.err
}

type fakeSource struct {
	client   directory.Client
	settings directory.Settings
}

func (f *fakeSource) ClientFor(settings directory.Settings) directory.Client {
	f.settings = settings

	return f.client
}

func testProfile() *directory.Profile {
	p := directory.NewProfile()
	p.DistinguishedName = "CN=Alice,OU=Berlin,OU=OFFICES,DC=example,DC=org"
	p.Login = "alice"
	p.Email = "alice@example.org"
	p.City = "Berlin"
	p.CountryCode = "DE"
	p.SetGroupDNs([]string{"CN=Staff,OU=Groups,DC=example,DC=org"})

	return p
}

func TestCheckLoginPrintsProfile(t *testing.T) {
	var out bytes.Buffer

	source := &fakeSource{client: fakeClient{profile: testProfile()}}
	settings := directory.Settings{Host: "ldap.example.org", Strategy: directory.StrategyLDAP}

	require.NoError(t, checkLogin(&out, source, policy.Default(), settings, "alice", ""))

	assert.Equal(t, settings, source.settings)
	assert.Contains(t, out.String(), "alice@example.org")
	assert.Contains(t, out.String(), "Berlin, DE")
	assert.Contains(t, out.String(), "STAFF")
	assert.Contains(t, out.String(), "false")
}

func TestCheckLoginBindErrorStillPrints(t *testing.T) {
	var out bytes.Buffer

	source := &fakeSource{client: fakeClient{
		profile: testProfile(),
		err:     &directory.BindError{Login: "alice"},
	}}

	err := checkLogin(&out, source, policy.Default(), directory.Settings{}, "alice", "wrong")

	require.ErrorIs(t, err, directory.ErrBind)
	assert.Contains(t, out.String(), "alice@example.org")
	assert.NotContains(t, out.String(), "wrong")
}

func TestCheckLoginConfigurationError(t *testing.T) {
	var out bytes.Buffer

	source := &fakeSource{client: fakeClient{err: &directory.ConfigurationError{Setting: directory.SettingHost}}}

	err := checkLogin(&out, source, policy.Default(), directory.Settings{}, "alice", "")

	var cfgErr *directory.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, out.String())
}

func profileRow(attribute, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*` + attribute + `\s*\|?\s*` + value + `\s*$`)
}

func TestCheckLoginPrintsPolicyFlags(t *testing.T) {
	tests := []struct {
		name          string
		policy        policy.Policy
		wantSuperuser string
		wantStaff     string
		wantIT        string
	}{
		{
			name:          "default policy",
			policy:        policy.Default(),
			wantSuperuser: "false",
			wantStaff:     "false",
			wantIT:        "false",
		},
		{
			name:          "superuser group",
			policy:        policy.New(policy.WithSuperuserGroup("staff")),
			wantSuperuser: "true",
			wantStaff:     "false",
			wantIT:        "false",
		},
		{
			name: "replaced predicates",
			policy: policy.New(
				policy.WithStaff(func(p *directory.Profile) bool { return p.Office() == "Berlin" }),
				policy.WithIT(func(p *directory.Profile) bool { return p.HasGroup("STAFF") }),
			),
			wantSuperuser: "false",
			wantStaff:     "true",
			wantIT:        "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			source := &fakeSource{client: fakeClient{profile: testProfile()}}
			require.NoError(t, checkLogin(&out, source, tt.policy, directory.Settings{}, "alice", ""))

			assert.Regexp(t, profileRow("superuser", tt.wantSuperuser), out.String())
			assert.Regexp(t, profileRow("staff", tt.wantStaff), out.String())
			assert.Regexp(t, profileRow("it", tt.wantIT), out.String())
		})
	}
}

func TestPrintGroups(t *testing.T) {
	var out bytes.Buffer

	printGroups(&out, []models.Group{{ID: 1, Name: "STAFF", Description: "everyone"}})

	assert.Contains(t, out.String(), "STAFF")
	assert.Contains(t, out.String(), "everyone")
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, nonEmpty("a", "", "c"))
	assert.Empty(t, nonEmpty("", ""))
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"start", "check", "config", "user", "group"} {
		assert.True(t, names[want], want)
	}
}
