package groups

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hostauth/hostauth/internal/hostfs"
)

// Document is the configured group document: username -> group names.
type Document map[string][]string

// ConfiguredResolver resolves groups from a JSON document.
type ConfiguredResolver struct {
	path    string
	timeout time.Duration
}

// NewConfiguredResolver creates a resolver reading the JSON document at path.
func NewConfiguredResolver(path string, timeout time.Duration) *ConfiguredResolver {
	return &ConfiguredResolver{path: path, timeout: timeout}
}

// Resolve reads the document and returns the list stored under username.
// A missing key yields an empty list; a missing or malformed document is an error.
func (r *ConfiguredResolver) Resolve(ctx context.Context, username string) ([]string, error) {
	b, err := hostfs.ReadFile(ctx, r.path, r.timeout)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err = json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}

	names := doc[username]
	if names == nil {
		return []string{}, nil
	}

	return names, nil
}
