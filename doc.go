// Package main provides the hostauth command.
// hostauth verifies a username and password against the host credential
// service (PAM, or the shadow file when PAM is not available) and prints an
// identity record with the numeric uid and group memberships of the user.
// Groups come from the host group database or from a JSON group document.
// Configuration is read from main.toml, see etc/main.toml.
package main
