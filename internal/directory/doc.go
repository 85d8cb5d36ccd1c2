// Package directory resolves a login and password against an LDAP or Active Directory server
// and turns the matching directory entry into a normalized Profile.
//
// Two bind strategies are supported:
//   - DNSearchClient binds as a service account, searches the user entry, then rebinds as the
//     resolved distinguished name to verify the password (plain LDAP).
//   - NTLMClient binds directly as the (normalized) login, which verifies the password and
//     authorizes the following search in one round trip (Active Directory).
//
// Both clients share BuildServerHandle for host, port and TLS resolution and talk to the server
// through the Conn and Dialer abstractions, so tests can replace the network with a fake.
//
// Example usage:
//
//	resolver := directory.NewResolver()
//	profile, err := resolver.Resolve(settings, "bob", password)
//	if err != nil {
//	    var cfgErr *directory.ConfigurationError
//	    if errors.As(err, &cfgErr) {
//	        // operator must fix the deployment
//	    }
//	}
package directory
