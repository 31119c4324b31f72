package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCamCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "cam",
		Short: "Print the camera settings per camera group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			groups, err := client.GetCamSettings()
			if err != nil {
				return err
			}

			labels := make([]string, 0, len(groups))
			for label := range groups {
				labels = append(labels, label)
			}
			sort.Strings(labels)

			out := cmd.OutOrStdout()
			for _, label := range labels {
				fmt.Fprintf(out, "[%s]\n", label)

				settings := groups[label]
				tokens := make([]string, 0, len(settings))
				for token := range settings {
					tokens = append(tokens, token)
				}
				sort.Strings(tokens)

				for _, token := range tokens {
					fmt.Fprintf(out, "  %s = %s\n", token, settings[token])
				}
			}

			return nil
		},
	}
}
