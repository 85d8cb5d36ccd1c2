package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowlist(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Allowlist
	}{
		{"nil", nil, Allowlist{}},
		{"string", " staff, Users ,,staff", Allowlist{"STAFF", "USERS"}},
		{"empty string", "", Allowlist{}},
		{"slice", []string{"a", " B "}, Allowlist{"A", "B"}},
		{"any slice", []any{"a", 3, "c"}, Allowlist{"A", "C"}},
		{"number", 42, Allowlist{}},
		{"bool", true, Allowlist{}},
		{"map", map[string]string{"a": "b"}, Allowlist{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAllowlist(tt.raw))
		})
	}
}

func TestAllowlistContains(t *testing.T) {
	a := ParseAllowlist("staff")

	assert.True(t, a.Contains("Staff "))
	assert.False(t, a.Contains("admins"))
	assert.False(t, Allowlist(nil).Contains("staff"))
}
