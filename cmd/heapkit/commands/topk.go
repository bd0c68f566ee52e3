package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/topk"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
)

// NewTopKCommand creates the topk command.
func NewTopKCommand(g *Globals) *cobra.Command {
	var (
		inputPath string
		k         int
		largest   bool
	)

	cmd := &cobra.Command{
		Use:   "topk [numbers...]",
		Short: "Select the k smallest or largest numbers",
		Long: `Select the k smallest numbers (or, with --largest, the k largest) in
sorted order. k must be between 0 and the number of inputs.`,
		Example: `  heapkit topk -k 3 5 1 9 3 7
  heapkit topk -k 10 --largest -i latencies.txt`,
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

			op, selectFn, title := "topk.smallest", topk.Smallest[float64], "Smallest"
			if largest {
				op, selectFn, title = "topk.largest", topk.Largest[float64], "Largest"
			}

			var selected []float64

			err = s.inst.Run(cmd.Context(), op, len(values), func(_ context.Context) error {
				var selectErr error

				selected, selectErr = selectFn(values, k)

				return selectErr
			})
			if err != nil {
				return err
			}

			return s.render(report.Report{
				Title:   title,
				Values:  selected,
				Summary: []report.Field{{Name: "k", Value: float64(k)}, {Name: "of", Value: float64(len(values))}},
			})
		},
	}

	addInputFlag(cmd, &inputPath)
	cmd.Flags().IntVarP(&k, "k", "k", 1, "number of values to select")
	cmd.Flags().BoolVar(&largest, "largest", false, "select the k largest instead of the k smallest")

	return cmd
}
