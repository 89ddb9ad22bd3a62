package hostfs

import (
	"errors"
	"path/filepath"
	"strings"
)

// Well-known host file locations, relative to the host root.
const (
	EtcGroupRel  = "etc/group"
	EtcPasswdRel = "etc/passwd"
	EtcShadowRel = "etc/shadow"
)

// ErrInvalidPath is returned for empty relative paths and paths escaping the root.
var ErrInvalidPath = errors.New("invalid host path")

// Path joins root with rel. An empty root means the real filesystem root.
func Path(root, rel string) (string, error) {
	rel = strings.TrimPrefix(rel, "/")

	clean := filepath.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidPath
	}

	if root == "" {
		root = "/"
	}

	return filepath.Join(root, clean), nil
}
