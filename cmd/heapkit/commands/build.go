package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
)

// NewBuildCommand creates the build command.
func NewBuildCommand(g *Globals) *cobra.Command {
	var (
		inputPath string
		direction string
		drain     bool
	)

	cmd := &cobra.Command{
		Use:   "build [numbers...]",
		Short: "Heapify numbers and show the heap",
		Long: `Build a binary heap from the input in linear time and print its array
layout (index i has children 2i+1 and 2i+2). With --drain the heap is
popped until empty and the values are printed in pop order.

The direction defaults to heap.default_direction from the config file.`,
		Example: `  heapkit build 9 4 7 1
  heapkit build -d max --drain 3 1 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			defer s.close()

			dir := s.cfg.Direction()
			if direction != "" {
				if dir, err = heap.ParseDirection(direction); err != nil {
					return err
				}
			}

			values, err := s.readValues(args, inputPath)
			if err != nil {
				return err
			}

			n := len(values)

			var h *heap.Heap[float64]

			err = s.inst.Run(cmd.Context(), "build", n, func(_ context.Context) error {
				var buildErr error

				h, buildErr = heap.Build(values, dir)

				return buildErr
			})
			if err != nil {
				return err
			}

			rep := report.Report{
				Title:   "Heap layout (" + dir.String() + ")",
				Values:  h.Values(),
				Summary: []report.Field{{Name: "size", Value: float64(n)}},
			}

			if root, peekErr := h.Peek(); peekErr == nil {
				rep.Summary = append(rep.Summary, report.Field{Name: "root", Value: root})
			}

			if drain {
				rep.Title = "Pop order (" + dir.String() + ")"
				rep.Values = make([]float64, 0, n)

				for h.Len() > 0 {
					v, _ := h.Pop() // non-empty
					rep.Values = append(rep.Values, v)
				}
			}

			s.logger.Debug("built heap", "direction", dir.String(), "size", n)

			return s.render(rep)
		},
	}

	addInputFlag(cmd, &inputPath)
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "heap direction: min or max (default from config)")
	cmd.Flags().BoolVar(&drain, "drain", false, "pop every value and print them in pop order")

	return cmd
}
