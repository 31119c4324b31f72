package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/simulator"
)

func newSimCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Run a local SHSWorks simulator",
		Long: "Starts the in-memory SHSWorks emulator on the configured host and port\n" +
			"and serves the TCP/IP remote-control grammar until interrupted. Useful\n" +
			"for integration testing without instrument hardware.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim := simulator.New()

			addr := fmt.Sprintf("%s:%d", v.GetString("host"), v.GetInt("port"))
			if err := sim.Start(addr); err != nil {
				return err
			}
			defer sim.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "SHSWorks simulator listening on %s\n", sim.Addr())

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			return nil
		},
	}
}
