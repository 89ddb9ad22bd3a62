//go:build !linux || !cgo

package auth

import "context"

// PAMAuthenticator rejects every request on builds without libpam.
type PAMAuthenticator struct {
	service string
}

// NewPAMAuthenticator creates an authenticator for the given PAM service.
func NewPAMAuthenticator(service string) *PAMAuthenticator {
	return &PAMAuthenticator{service: service}
}

// Verify always rejects with ErrPAMUnavailable.
func (p *PAMAuthenticator) Verify(_ context.Context, _, _ string) error {
	return reject(ErrPAMUnavailable)
}
