package groups

import (
	"context"
	"time"

	"github.com/hostauth/hostauth/internal/hostfs"
)

// DefaultConfigPath is where ConfiguredResolver looks for its document by default.
const DefaultConfigPath = "/etc/osjs/groups.json"

// Resolver translates a username into its group names.
type Resolver interface {
	Resolve(ctx context.Context, username string) ([]string, error)
}

// Options selects and configures the resolver backend.
type Options struct {
	// Native selects NativeResolver. nil means true.
	Native *bool
	// Config is the JSON document read by ConfiguredResolver.
	Config string
	// HostRoot prefixes the native group database path.
	HostRoot string
	// ReadTimeout bounds every file read.
	ReadTimeout time.Duration
}

// Bool returns a pointer to v, for Options.Native.
func Bool(v bool) *bool {
	return &v
}

// IsNative reports whether the native backend is selected.
func (o Options) IsNative() bool {
	return o.Native == nil || *o.Native
}

// WithDefaults fills unset fields with the built-in defaults.
// Explicitly set fields always win.
func (o Options) WithDefaults() Options {
	if o.Native == nil {
		o.Native = Bool(true)
	}

	if o.Config == "" {
		o.Config = DefaultConfigPath
	}

	if o.ReadTimeout <= 0 {
		o.ReadTimeout = hostfs.DefaultReadTimeout
	}

	return o
}

// New returns the backend chosen by o after applying defaults.
func New(o Options) Resolver {
	o = o.WithDefaults()

	if o.IsNative() {
		return NewNativeResolver(o.HostRoot, o.ReadTimeout)
	}

	return NewConfiguredResolver(o.Config, o.ReadTimeout)
}
