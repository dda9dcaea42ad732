package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "prprint %s\n", Version)
			fmt.Fprintf(out, "Commit: %s\n", Commit)
			fmt.Fprintf(out, "Built:  %s\n", BuildDate)
			fmt.Fprintf(out, "Go:     %s\n", runtime.Version())
			return nil
		},
	}
}
