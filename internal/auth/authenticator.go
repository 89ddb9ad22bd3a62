package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Authentication backends accepted by NewAuthenticator.
const (
	BackendPAM    = "pam"
	BackendShadow = "shadow"
)

const (
	// DefaultPAMService is the PAM service used when none is configured.
	DefaultPAMService = "login"

	// DefaultVerifyTimeout bounds a credential check when none is configured.
	DefaultVerifyTimeout = 10 * time.Second
)

// Authenticator verifies a username/password pair against the host.
//
// Verify returns nil on acceptance. Every failure, whatever its cause, is a
// *CredentialRejectedError.
type Authenticator interface {
	Verify(ctx context.Context, username, password string) error
}

// AuthenticatorConfig holds the credential backend settings.
type AuthenticatorConfig struct {
	// Backend is BackendPAM or BackendShadow.
	Backend string
	// PAMService is the PAM service name (e.g. "login", "sshd").
	PAMService string
	// HostRoot prefixes host account database paths for the shadow backend.
	HostRoot string
	// Timeout bounds every Verify call.
	Timeout time.Duration
	// ReadTimeout bounds the shadow file read.
	ReadTimeout time.Duration
}

// NewAuthenticator creates the configured backend wrapped with its timeout.
func NewAuthenticator(cfg AuthenticatorConfig) (Authenticator, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultVerifyTimeout
	}

	var a Authenticator

	switch cfg.Backend {
	case "", BackendPAM:
		service := cfg.PAMService
		if service == "" {
			service = DefaultPAMService
		}

		a = NewPAMAuthenticator(service)
	case BackendShadow:
		a = NewShadowAuthenticator(cfg.HostRoot, cfg.ReadTimeout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	return WithTimeout(a, cfg.Timeout), nil
}

// timeoutAuthenticator bounds the wrapped Verify call.
type timeoutAuthenticator struct {
	next    Authenticator
	timeout time.Duration
}

// WithTimeout returns an Authenticator that rejects when a does not answer within d.
// Host calls that cannot be interrupted finish in the background.
func WithTimeout(a Authenticator, d time.Duration) Authenticator {
	return &timeoutAuthenticator{next: a, timeout: d}
}

func (t *timeoutAuthenticator) Verify(ctx context.Context, username, password string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- t.next.Verify(ctx, username, password)
	}()

	select {
	case err := <-done:
		if err != nil {
			return reject(err)
		}

		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return reject(fmt.Errorf("%w after %s", ErrVerifyTimeout, t.timeout))
		}

		return reject(ctx.Err())
	}
}
