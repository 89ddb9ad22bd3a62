package app

import (
	"github.com/spf13/cobra"

	"github.com/hostauth/hostauth/internal/groups"
)

func newGroupsCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "groups <username>",
		Short: "Print the groups the configured backend resolves for a user",
		Long: `groups resolves the memberships of one user with the configured group
backend and prints them as a JSON array. Unlike login, resolution errors are
reported instead of falling back to an empty list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := groups.New(s.cfg.GroupOptions()).Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), names)
		},
	}
}
