package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newVersionCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the SHSWorks version of the connected instrument",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			version, err := client.GetVersion()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)

			return nil
		},
	}
}
