package commands

import (
	"cmp"
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heapsort"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
)

// NewSortCommand creates the sort command.
func NewSortCommand(g *Globals) *cobra.Command {
	var (
		inputPath  string
		descending bool
	)

	cmd := &cobra.Command{
		Use:   "sort [numbers...]",
		Short: "Heap sort numbers",
		Long: `Sort numbers in place with heap sort.

Ascending by default. Numbers come from the arguments or, when none are
given, from --input.`,
		Example: `  heapkit sort 5 3 8 1
  heapkit sort --desc -i values.txt.lz4
  seq 100 | shuf | heapkit sort -f plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			defer s.close()

			values, err := s.readValues(args, inputPath)
			if err != nil {
				return err
			}

			err = s.inst.Run(cmd.Context(), "sort", len(values), func(_ context.Context) error {
				if descending {
					heapsort.SortFunc(values, func(a, b float64) int { return cmp.Compare(b, a) })
				} else {
					heapsort.Sort(values)
				}

				return nil
			})
			if err != nil {
				return err
			}

			title := "Sorted ascending"
			if descending {
				title = "Sorted descending"
			}

			return s.render(report.Report{Title: title, Values: values})
		},
	}

	addInputFlag(cmd, &inputPath)
	cmd.Flags().BoolVar(&descending, "desc", false, "sort from largest to smallest")

	return cmd
}
