package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/prprint/pkg/prprint"
	"github.com/rpgo/prprint/pkg/stream"
)

type inputLine struct {
	no   int
	text string
}

// readLines returns the non-blank lines of r that do not start with '#'.
func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine
	sc := bufio.NewScanner(r)
	for no := 1; sc.Scan(); no++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, inputLine{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// formatAll formats every line with up to jobs goroutines sharing one
// read-only Grouping. Results keep the input order.
func formatAll(ctx context.Context, lines []inputLine, p prprint.Policy, g prprint.Grouping, jobs int) ([]string, error) {
	if jobs < 1 {
		jobs = 1
	}
	out := make([]string, len(lines))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, ln := range lines {
		i, ln := i, ln
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := parseValue(ln.text, 64)
			if err != nil {
				return fmt.Errorf("line %d: %w", ln.no, err)
			}
			out[i] = prprint.Format(v, p, g)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *app) newBatchCmd() *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Format one number per line from FILE or stdin",
		Long: `Format one number per line from FILE, or from stdin when FILE is omitted or "-".
Blank lines and lines starting with '#' are skipped. Output keeps input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, grouping, err := a.resolve()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			lines, err := readLines(in)
			if err != nil {
				return err
			}
			out, err := formatAll(cmd.Context(), lines, policy, grouping, jobs)
			if err != nil {
				return err
			}

			w := stream.NewWriter(cmd.OutOrStdout(), policy, grouping)
			for _, s := range out {
				w.Print(s, "\n")
			}
			log.Debug().Int("values", len(out)).Int("jobs", jobs).Msg("batch formatted")
			return w.Err()
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of values formatted concurrently")
	return cmd
}
