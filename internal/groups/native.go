package groups

import (
	"context"
	"fmt"
	"time"

	"github.com/hostauth/hostauth/internal/hostfs"
)

// NativeResolver resolves groups from the host group database.
type NativeResolver struct {
	root    string
	timeout time.Duration
}

// NewNativeResolver creates a resolver reading <root>/etc/group.
func NewNativeResolver(root string, timeout time.Duration) *NativeResolver {
	return &NativeResolver{root: root, timeout: timeout}
}

// Resolve reads and parses the group database and returns the groups listing username.
func (r *NativeResolver) Resolve(ctx context.Context, username string) ([]string, error) {
	path, err := hostfs.Path(r.root, hostfs.EtcGroupRel)
	if err != nil {
		return nil, err
	}

	b, err := hostfs.ReadFile(ctx, path, r.timeout)
	if err != nil {
		return nil, err
	}

	idx, err := ParseGroupTable(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return idx.Lookup(username), nil
}
