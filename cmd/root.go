// Package cmd implements the shsctl command line interface.
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/logger"
	"github.com/ArcetriAdaptiveOptics/go-shsworks/shsworks"
)

// Execute runs the shsctl root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "shsctl",
		Short: "Remote control for SHSWorks wavefront sensor software",
		Long: "shsctl talks to the TCP/IP remote-control interface of the SHSWorks\n" +
			"wavefront sensor software: query versions and parameters, run pass/fail\n" +
			"evaluations, read field statistics and camera settings, or run a local\n" +
			"SHSWorks simulator for integration testing.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default shsctl.toml in . or $HOME/.config/shsctl)")
	flags.String("host", "localhost", "SHSWorks host")
	flags.Int("port", shsworks.DefaultPort, "SHSWorks TCP port")
	flags.Duration("timeout", 30*time.Second, "receive timeout per command (0 = none)")
	flags.Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(v),
		newTestCmd(v),
		newEvalCmd(v),
		newParCmd(v),
		newStatsCmd(v),
		newCamCmd(v),
		newSimCmd(v),
	)

	return rootCmd
}

// initConfig binds the persistent flags to viper and merges an optional TOML
// config file. Flags win over file values, file values over defaults.
func initConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("shsctl")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/shsctl")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if v.GetBool("verbose") {
		logger.SetLevel(logger.DebugLevel)
	}

	return nil
}

// newClient builds an SHSWorks client from the resolved configuration.
func newClient(v *viper.Viper) (*shsworks.Client, error) {
	cfg, err := shsworks.NewConnectionConfig(
		v.GetString("host"),
		v.GetInt("port"),
		shsworks.WithRecvTimeout(v.GetDuration("timeout")),
		shsworks.WithQuiet(!v.GetBool("verbose")),
	)
	if err != nil {
		return nil, err
	}

	return shsworks.NewClient(cfg), nil
}
