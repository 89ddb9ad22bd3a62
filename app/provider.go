package app

import (
	"github.com/hostauth/hostauth/internal/auth"
)

// provider wires the configured backends into an auth.Provider.
func (s *state) provider() (*auth.Provider, error) {
	authn, err := auth.NewAuthenticator(s.cfg.AuthenticatorConfig())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	ids := auth.NewHostIdentity(s.cfg.Auth.HostRoot, s.cfg.Groups.ReadTimeout)

	return auth.NewProvider(authn, ids, s.cfg.GroupOptions()), nil
}
