package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/median"
	"github.com/Sumatoshi-tech/heapkit/pkg/observability"
	"github.com/Sumatoshi-tech/heapkit/pkg/report"
	"github.com/Sumatoshi-tech/heapkit/pkg/streamio"
)

const plotFileMode = 0o644

// NewMedianCommand creates the median command.
func NewMedianCommand(g *Globals) *cobra.Command {
	var (
		inputPath string
		running   bool
		plotPath  string
	)

	cmd := &cobra.Command{
		Use:   "median [numbers...]",
		Short: "Compute the median of a numeric stream",
		Long: `Compute the median with a pair of heaps.

Input is consumed as a stream, so arbitrarily long inputs only cost memory
for the heaps. Output is written once the input ends: --running lists the
median after every value and --plot writes an HTML chart of the stream and
its running median.`,
		Example: `  heapkit median 5 15 1 3
  seq 100 | heapkit median --running -f plain
  heapkit median -i values.txt --plot median.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, observability.ModeCLI)
			if err != nil {
				return err
			}

			defer s.close()

			collect := running || plotPath != ""
			tracker := median.New[float64]()

			var inputs, medians []float64

			add := func(v float64) {
				tracker.Add(v)

				if collect {
					m, _ := tracker.Median() // non-empty after Add
					inputs = append(inputs, v)
					medians = append(medians, m)
				}
			}

			err = s.inst.Stream(cmd.Context(), "median", func(_ context.Context) (int, error) {
				if len(args) > 0 {
					values, parseErr := streamio.ParseArgs(args)
					if parseErr != nil {
						return 0, parseErr
					}

					for _, v := range values {
						add(v)
					}

					return tracker.Len(), nil
				}

				scanErr := s.scan(inputPath, func(v float64) error {
					add(v)

					return nil
				})

				return tracker.Len(), scanErr
			})
			if err != nil {
				return err
			}

			m, err := tracker.Median()
			if err != nil {
				return err
			}

			if plotPath != "" {
				if err = writePlot(plotPath, inputs, medians); err != nil {
					return err
				}

				s.logger.Info("wrote median chart", "path", plotPath)
			}

			lower, upper := tracker.Sizes()
			s.logger.Debug("median heaps", "lower", lower, "upper", upper)

			rep := report.Report{
				Title:   "Median",
				Summary: []report.Field{{Name: "median", Value: m}, {Name: "count", Value: float64(tracker.Len())}},
			}

			if running {
				rep.Title = "Running median"
				rep.Values = medians
			}

			return s.render(rep)
		},
	}

	addInputFlag(cmd, &inputPath)
	cmd.Flags().BoolVar(&running, "running", false, "output the median after every value")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write an HTML chart of the running median to this file")

	return cmd
}

func writePlot(path string, inputs, medians []float64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, plotFileMode)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}

	renderErr := report.RenderMedianChart(f, inputs, medians)

	closeErr := f.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close plot: %w", closeErr)
	}

	return nil
}
