package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/prprint/pkg/prprint"
)

func (a *app) newLocalesCmd() *cobra.Command {
	var sample float64
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List known locales with a sample number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolving first registers locale files named by --profiles.
			policy, _, err := a.resolve()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range a.registry.Names() {
				g, err := a.registry.Lookup(name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "%-8s %s\n", name, prprint.Format(sample, policy, g)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&sample, "sample", -1234567.891, "number shown for each locale")
	return cmd
}
