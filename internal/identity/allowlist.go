package identity

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Allowlist is the set of local group names every authenticated directory user joins,
// uppercased and trimmed.
type Allowlist []string

// ParseAllowlist normalizes the configured LDAP_AUTHENTICATED_GROUPS value.
// It accepts nil, a comma separated string, []string and []any of strings. Any other value
// yields an empty allowlist and a warning.
func ParseAllowlist(raw any) Allowlist {
	var items []string

	switch v := raw.(type) {
	case nil:
		return Allowlist{}
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case Allowlist:
		items = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				log.Warn().Str("type", fmt.Sprintf("%T", item)).
					Msg("ignoring non string entry in authenticated groups allowlist")

				continue
			}

			items = append(items, s)
		}
	default:
		log.Warn().Str("type", fmt.Sprintf("%T", raw)).
			Msg("authenticated groups allowlist is not a list of names, ignoring it")

		return Allowlist{}
	}

	out := make(Allowlist, 0, len(items))

	for _, item := range items {
		name := normalizeGroup(item)
		if name == "" || out.Contains(name) {
			continue
		}

		out = append(out, name)
	}

	return out
}

// Contains reports whether name, compared uppercased, is in the allowlist.
func (a Allowlist) Contains(name string) bool {
	name = normalizeGroup(name)

	for _, item := range a {
		if item == name {
			return true
		}
	}

	return false
}

func normalizeGroup(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
