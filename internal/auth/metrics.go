package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcome label values.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var (
	loginTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "hostauth_login_total",
			Help: "Number of login attempts, differentiated by outcome.",
		},
		[]string{"outcome"},
	)

	groupFallbackTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "hostauth_group_fallback_total",
			Help: "Number of logins that continued with an empty group list after group resolution failed.",
		},
	)
)
