package auth

import (
	"encoding/json"
)

// Credentials is the username/password pair of one login call.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// String never includes the password.
func (c Credentials) String() string {
	return c.Username
}

// Request is the login input handed over by the hosting platform.
type Request struct {
	Body Credentials `json:"body"`
}

// IdentityRecord is the normalized identity returned by a successful login.
type IdentityRecord struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

// NewIdentityRecord builds a record owning its own copy of groups.
// A nil groups slice is stored as an empty one so the JSON form is always an array.
func NewIdentityRecord(id int, username string, groups []string) IdentityRecord {
	g := make([]string, len(groups))
	copy(g, groups)

	return IdentityRecord{ID: id, Username: username, Groups: g}
}

// LoginResult is either an identity record or a rejection.
type LoginResult struct {
	identity *IdentityRecord
}

// Success wraps rec as a successful login.
func Success(rec IdentityRecord) LoginResult {
	return LoginResult{identity: &rec}
}

// Rejected is the definite "authentication failed" result.
func Rejected() LoginResult {
	return LoginResult{}
}

// OK reports whether the login succeeded.
func (r LoginResult) OK() bool {
	return r.identity != nil
}

// Identity returns the identity record of a successful login.
func (r LoginResult) Identity() (IdentityRecord, bool) {
	if r.identity == nil {
		return IdentityRecord{}, false
	}

	return *r.identity, true
}

// MarshalJSON renders the identity record, or the literal false for a rejection.
func (r LoginResult) MarshalJSON() ([]byte, error) {
	if r.identity == nil {
		return []byte("false"), nil
	}

	return json.Marshal(r.identity)
}
