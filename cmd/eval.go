package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/shsworks"
)

func newEvalCmd(v *viper.Viper) *cobra.Command {
	var withNames bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a pass/fail evaluation and print the item values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			defer client.Close()

			values, err := client.Evaluation()
			if err != nil {
				if errors.Is(err, shsworks.ErrPassFailDisabled) || errors.Is(err, shsworks.ErrNoPFItemsSelected) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return nil
				}

				return err
			}

			names := map[int]string{}
			if withNames {
				if names, err = client.GetPFNamesMap(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, val := range values {
				if name, ok := names[val.Index]; ok {
					fmt.Fprintf(out, "%s = %s\n", name, val.Value)
					continue
				}
				fmt.Fprintf(out, "%d = %s\n", val.Index, val.Value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&withNames, "names", false, "label values with pass/fail item names")

	return cmd
}
