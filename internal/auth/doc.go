// Package auth turns submitted credentials into a local user.
//
// A Backend either accepts the credentials and returns the user, or defers so the next backend
// can try. Hard errors (misconfiguration, an unavailable user store) are returned as errors and
// stop the Chain.
//
// DirectoryBackend resolves the login against LDAP or Active Directory, applies the access
// policy and syncs the local user and its groups. LocalBackend checks accounts whose Argon2id
// password hash is stored locally.
//
// Example usage:
//
//	chain := auth.NewChain(
//	    auth.NewLocalBackend(users),
//	    auth.NewDirectoryBackend(cfg.Directory.Settings, cfg.Directory.Allowlist, resolver, syncService),
//	)
//	result, err := chain.Authenticate(username, password)
//	if err == nil && result.Outcome == auth.Accepted {
//	    // result.User is logged in
//	}
package auth
