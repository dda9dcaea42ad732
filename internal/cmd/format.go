package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/prprint/pkg/stream"
)

// parseValue accepts anything strconv does, including inf, -inf and nan.
func parseValue(s string, bits int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

func (a *app) newFormatCmd() *cobra.Command {
	var bits int
	cmd := &cobra.Command{
		Use:   "format VALUE...",
		Short: "Format numbers given as arguments, one per line",
		Example: `  prprint format -p 2 --locale de-DE 1234567.891
  prprint format -p 3 --trim -- -0.5 3.1 inf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bits != 32 && bits != 64 {
				return fmt.Errorf("--bits must be 32 or 64, got %d", bits)
			}
			policy, grouping, err := a.resolve()
			if err != nil {
				return err
			}

			w := stream.NewWriter(cmd.OutOrStdout(), policy, grouping)
			for _, arg := range args {
				v, err := parseValue(arg, bits)
				if err != nil {
					return err
				}
				if bits == 32 {
					w.Float32(float32(v))
				} else {
					w.Float(v)
				}
				w.Print("\n")
			}
			return w.Err()
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 64, "float width of the values: 32 or 64")
	return cmd
}
