package config

import (
	"errors"
)

// ErrInvalidConfig error if a config value fails validation.
var ErrInvalidConfig = errors.New("invalid config")
