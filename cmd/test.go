package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTestCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the SHSWorks connectivity self-test",
		Long: "Sends the test command, which answers without performing frame reading\n" +
			"or evaluation, and reports the exchange result.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := client.Test(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "SHSWorks at %s:%d answered the self-test\n",
				v.GetString("host"), v.GetInt("port"))

			return nil
		},
	}
}
