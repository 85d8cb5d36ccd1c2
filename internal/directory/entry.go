package directory

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// Directory attributes read into a Profile.
const (
	AttrDistinguishedName = "distinguishedName"
	AttrCommonName        = "cn"
	AttrGivenName         = "givenName"
	AttrSurname           = "sn"
	AttrEmail             = "mail"
	AttrCountry           = "c"
	AttrState             = "st"
	AttrCity              = "l"
	AttrDepartment        = "department"
	AttrTitle             = "title"
	AttrLogin             = "sAMAccountName"
	AttrUID               = "uid"
	AttrManager           = "manager"
	AttrMemberOf          = "memberOf"
)

// searchAttributes requests every user attribute plus memberOf and distinguishedName, which some servers
// only return when named.
var searchAttributes = []string{"*", AttrMemberOf, AttrDistinguishedName}

// LoadEntry copies the known attribute list from entry into p.
// Missing attributes leave the field empty. A nil entry is a no-op.
func LoadEntry(p *Profile, entry *ldap.Entry) {
	if p == nil || entry == nil {
		return
	}

	p.DistinguishedName = attribute(entry, AttrDistinguishedName)
	if p.DistinguishedName == "" {
		p.DistinguishedName = entry.DN
	}

	p.CommonName = attribute(entry, AttrCommonName)
	p.GivenName = attribute(entry, AttrGivenName)
	p.Surname = attribute(entry, AttrSurname)
	p.Email = attribute(entry, AttrEmail)
	p.CountryCode = attribute(entry, AttrCountry)
	p.StateCode = attribute(entry, AttrState)
	p.City = attribute(entry, AttrCity)
	p.Department = attribute(entry, AttrDepartment)
	p.Title = attribute(entry, AttrTitle)
	p.ManagerDN = attribute(entry, AttrManager)

	p.Login = attribute(entry, AttrLogin)
	if p.Login == "" {
		p.Login = attribute(entry, AttrUID)
	}

	p.SetGroupDNs(attributes(entry, AttrMemberOf))
}

// attribute returns the first value of name, matching the attribute name case-insensitively.
func attribute(entry *ldap.Entry, name string) string {
	if values := attributes(entry, name); len(values) > 0 {
		return values[0]
	}

	return ""
}

func attributes(entry *ldap.Entry, name string) []string {
	for _, attr := range entry.Attributes {
		if strings.EqualFold(attr.Name, name) && len(attr.Values) > 0 {
			return attr.Values
		}
	}

	return nil
}
