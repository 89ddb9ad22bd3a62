// Package auth authenticates users against the host and builds their identity record.
//
// # Authentication Backends
//
// Authenticator verifies a username/password pair and either accepts it or
// rejects it with a *CredentialRejectedError. Callers never learn whether the
// user is unknown, the password wrong or the account locked.
//
// PAMAuthenticator runs a libpam transaction (pam_authenticate followed by
// pam_acct_mgmt) for a configurable PAM service. It needs linux and cgo;
// other builds reject every request with ErrPAMUnavailable.
//
// ShadowAuthenticator verifies md5, sha256 and sha512 crypt hashes from the
// shadow file directly and falls back to su(1) behind a pty for formats such
// as yescrypt.
//
// WithTimeout bounds any Authenticator; NewAuthenticator applies it for you.
//
// # Login Pipeline
//
// Provider.Login runs three steps per call:
//   - verify the credentials; a rejection ends the call with Rejected()
//   - look up the uid and resolve the groups in parallel
//   - assemble the IdentityRecord
//
// Group resolution failures degrade to an empty group list. A uid lookup
// failure is returned as an error wrapping ErrIdentityLookupFailed, since a
// record without an id is useless to the session layer.
//
// Provider.Logout always returns true.
//
// Example usage:
//
//	authn, err := auth.NewAuthenticator(auth.AuthenticatorConfig{Backend: auth.BackendPAM})
//	provider := auth.NewProvider(authn, auth.NewHostIdentity("", 0), groups.Options{})
//
//	result, err := provider.Login(ctx, auth.Request{Body: auth.Credentials{
//	    Username: "alice",
//	    Password: "secret",
//	}})
//	if err != nil {
//	    // uid lookup failed
//	}
//
//	if rec, ok := result.Identity(); ok {
//	    fmt.Println(rec.ID, rec.Groups)
//	}
package auth
