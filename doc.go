// Package main provides the entry point of authgw, an authentication gateway.
// It serves a login page in front of protected applications, verifies credentials
// against a local user store or an LDAP / Active Directory server and keeps the
// local users and their group memberships in sync with the directory.
package main
