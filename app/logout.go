package app

import (
	"github.com/spf13/cobra"

	"github.com/hostauth/hostauth/internal/auth"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End a session, always prints true",
		Args:  cobra.NoArgs,
		// logout has no state to load, it must succeed even without a config file
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p auth.Provider

			return writeJSON(cmd.OutOrStdout(), p.Logout(cmd.Context()))
		},
	}
}
