package auth

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/hostauth/hostauth/internal/hostfs"
)

// passwdFields is the field count of a passwd(5) line.
const passwdFields = 7

// IdentityLookup resolves the numeric user id of a host account.
type IdentityLookup interface {
	UID(ctx context.Context, username string) (int, error)
}

// HostIdentity looks up uids in the host account database.
//
// With an empty root it asks the system resolver (NSS, so LDAP or SSSD users
// are found too); with a root it parses <root>/etc/passwd.
type HostIdentity struct {
	root        string
	readTimeout time.Duration
	lookup      func(username string) (*user.User, error)
}

// NewHostIdentity creates a lookup for the host mounted at root.
// readTimeout bounds both the passwd read and the system resolver call.
func NewHostIdentity(root string, readTimeout time.Duration) *HostIdentity {
	if readTimeout <= 0 {
		readTimeout = hostfs.DefaultReadTimeout
	}

	return &HostIdentity{root: root, readTimeout: readTimeout, lookup: user.Lookup}
}

// UID returns the numeric id of username.
func (h *HostIdentity) UID(ctx context.Context, username string) (int, error) {
	if h.root == "" || h.root == "/" {
		return h.systemUID(ctx, username)
	}

	path, err := hostfs.Path(h.root, hostfs.EtcPasswdRel)
	if err != nil {
		return 0, err
	}

	b, err := hostfs.ReadFile(ctx, path, h.readTimeout)
	if err != nil {
		return 0, err
	}

	return passwdUID(string(b), username)
}

type lookupResult struct {
	user *user.User
	err  error
}

// systemUID asks the system resolver, giving up after readTimeout or when ctx is done.
// A hung NSS backend keeps its goroutine until the call returns.
func (h *HostIdentity) systemUID(ctx context.Context, username string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, h.readTimeout)
	defer cancel()

	done := make(chan lookupResult, 1)

	go func() {
		u, err := h.lookup(username)
		done <- lookupResult{user: u, err: err}
	}()

	var u *user.User

	select {
	case res := <-done:
		if res.err != nil {
			return 0, fmt.Errorf("lookup %s: %w", username, res.err)
		}

		u = res.user
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: %s after %s", ErrLookupTimeout, username, h.readTimeout)
		}

		return 0, fmt.Errorf("lookup %s: %w", username, ctx.Err())
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("uid %q of %s: %w", u.Uid, username, err)
	}

	return uid, nil
}

// passwdUID finds username in passwd(5) content and returns its uid.
func passwdUID(content, username string) (int, error) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) != passwdFields || parts[0] != username {
			continue
		}

		uid, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("uid %q of %s: %w", parts[2], username, err)
		}

		return uid, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUserNotFound, username)
}
