package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newParCmd(v *viper.Viper) *cobra.Command {
	parCmd := &cobra.Command{
		Use:   "par",
		Short: "Query or set SHSWorks parameters",
	}

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of a parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			value, err := client.GetPar(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s (%s)\n", args[0], value, value.Kind())

			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Set the value of a parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.SetPar(args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])

			return nil
		},
	}

	parCmd.AddCommand(getCmd, setCmd)

	return parCmd
}
