package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hostauth/hostauth/internal/groups"
)

// Provider is the pluggable login provider handed to the session layer.
// It holds no state besides its configuration, so one Provider serves any
// number of concurrent Login calls.
type Provider struct {
	authn    Authenticator
	ids      IdentityLookup
	resolver groups.Resolver
	opts     groups.Options
}

// NewProvider merges opts over the built-in defaults once and selects the group backend.
func NewProvider(authn Authenticator, ids IdentityLookup, opts groups.Options) *Provider {
	opts = opts.WithDefaults()

	return &Provider{
		authn:    authn,
		ids:      ids,
		resolver: groups.New(opts),
		opts:     opts,
	}
}

// Options returns the merged options the provider was built with.
func (p *Provider) Options() groups.Options {
	return p.opts
}

// Login authenticates req and resolves the identity record of the user.
//
// A rejected credential pair yields Rejected() and a nil error. Group
// resolution failures are logged and replaced by an empty group list. A
// failed uid lookup is returned as an error wrapping ErrIdentityLookupFailed.
func (p *Provider) Login(ctx context.Context, req Request) (LoginResult, error) {
	username := req.Body.Username

	l := log.With().
		Str("request_id", uuid.NewString()).
		Str("username", username).
		Logger()

	if err := p.verify(ctx, req.Body); err != nil {
		l.Error().Err(err).Msg("authentication failed")
		loginTotal.WithLabelValues(outcomeRejected).Inc()

		return Rejected(), nil
	}

	rec, err := p.resolveIdentity(ctx, &l, username)
	if err != nil {
		l.Error().Err(err).Msg("identity lookup failed after successful authentication")
		loginTotal.WithLabelValues(outcomeError).Inc()

		return LoginResult{}, err
	}

	l.Info().Int("uid", rec.ID).Strs("groups", rec.Groups).Msg("login succeeded")
	loginTotal.WithLabelValues(outcomeSuccess).Inc()

	return Success(rec), nil
}

// Logout acknowledges a logout. There is no state to clear.
func (p *Provider) Logout(_ context.Context) bool {
	return true
}

func (p *Provider) verify(ctx context.Context, c Credentials) error {
	if c.Username == "" {
		return reject(ErrEmptyUsername)
	}

	if err := p.authn.Verify(ctx, c.Username, c.Password); err != nil {
		return reject(err)
	}

	return nil
}

// resolveIdentity looks up the uid and the groups of username in parallel.
func (p *Provider) resolveIdentity(ctx context.Context, l *zerolog.Logger, username string) (IdentityRecord, error) {
	var (
		uid   int
		names []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		uid, err = p.ids.UID(gctx, username)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIdentityLookupFailed, err)
		}

		return nil
	})

	g.Go(func() error {
		resolved, err := p.resolver.Resolve(gctx, username)
		if err != nil && gctx.Err() != nil {
			// the uid branch failed and canceled us, its error wins
			return nil
		}

		names = groupsOrEmpty(l, resolved, err)

		return nil
	})

	if err := g.Wait(); err != nil {
		return IdentityRecord{}, err
	}

	return NewIdentityRecord(uid, username, names), nil
}

// groupsOrEmpty applies the degrade policy: group lookup failures never block a login.
func groupsOrEmpty(l *zerolog.Logger, names []string, err error) []string {
	if err != nil {
		l.Warn().Err(err).Msg("group resolution failed, continuing without groups")
		groupFallbackTotal.Inc()

		return []string{}
	}

	if names == nil {
		return []string{}
	}

	return names
}
