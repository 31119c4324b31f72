package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatsCmd(v *viper.Viper) *cobra.Command {
	var fieldPart string

	cmd := &cobra.Command{
		Use:   "stats <field-id>",
		Short: "Print the statistics block of a data field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("field-id must be an integer: %w", err)
			}

			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			stats, err := client.GetFieldStats(fieldID, fieldPart)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "x:    [%g, %g]\n", stats.XMin, stats.XMax)
			fmt.Fprintf(out, "y:    [%g, %g]\n", stats.YMin, stats.YMax)
			fmt.Fprintf(out, "min:  %g\n", stats.Min)
			fmt.Fprintf(out, "max:  %g\n", stats.Max)
			fmt.Fprintf(out, "mean: %g\n", stats.Mean)
			fmt.Fprintf(out, "pv:   %g\n", stats.PV)
			fmt.Fprintf(out, "rms:  %g\n", stats.RMS)

			return nil
		},
	}

	cmd.Flags().StringVar(&fieldPart, "part", "ORG", "field part (ORG or REF)")

	return cmd
}
