// Package app implements the hostauth commands.
package app

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hostauth/hostauth/internal/config"
	"github.com/hostauth/hostauth/internal/logger"
)

const (
	// DefaultConfigDir holds main.toml unless --config-dir or HOSTAUTH_CONFIG_DIR say otherwise.
	DefaultConfigDir = "/etc/hostauth/"

	envPrefix      = "HOSTAUTH"
	flagConfigDir  = "config-dir"
	maxRequestSize = 64 << 10
)

// state is shared by the sub commands of one root command.
type state struct {
	v   *viper.Viper
	cfg config.Config
}

// NewRootCmd builds the hostauth command tree.
func NewRootCmd() *cobra.Command {
	s := &state{v: viper.New()}

	s.v.SetEnvPrefix(envPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "hostauth",
		Short: "hostauth authenticates users against the host account database",
		Long: `hostauth checks username and password against the host credential
service (PAM or the shadow file) and resolves the numeric uid and group
memberships of the user into an identity record.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return s.load()
		},
	}

	rootCmd.PersistentFlags().String(flagConfigDir, DefaultConfigDir, "directory containing main.toml")
	_ = s.v.BindPFlag(flagConfigDir, rootCmd.PersistentFlags().Lookup(flagConfigDir))

	rootCmd.AddCommand(
		newLoginCmd(s),
		newLogoutCmd(),
		newGroupsCmd(s),
		newConfigCmd(s),
	)

	return rootCmd
}

// load reads the config and initializes the logger.
func (s *state) load() error {
	var err error

	if s.cfg, err = config.ReadConfig(s.v.GetString(flagConfigDir)); err != nil {
		return err
	}

	return logger.Init(s.cfg.Log)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("hostauth failed")

		return err
	}

	return nil
}
