package config

import (
	"time"

	"github.com/hostauth/hostauth/internal/logger"
)

// Config overall data structure.
type Config struct {
	Log    logger.Log
	Auth   Auth
	Groups Groups
}

// Auth holds the credential backend settings.
type Auth struct {
	Backend    string        `validate:"oneof=pam shadow"` // pam or shadow
	PAMService string        `validate:"required"`         // pam service name, e.g. login or sshd
	Timeout    time.Duration `validate:"gt=0"`             // bound for one credential check
	HostRoot   string        // mount point of the host filesystem, empty for the live system
}

// Groups holds the group resolver settings.
type Groups struct {
	Native      bool          // true = host group database, false = Config document
	Config      string        `validate:"required"` // path of the JSON group document
	ReadTimeout time.Duration `validate:"gt=0"`     // bound for one file read
}
