package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrSeriesMismatch is returned when the value and median series differ in length.
var ErrSeriesMismatch = errors.New("report: series length mismatch")

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	lineWidth   = 2
)

// RenderMedianChart writes an HTML line chart of a stream and its running median.
func RenderMedianChart(w io.Writer, values, medians []float64) error {
	if len(values) != len(medians) {
		return fmt.Errorf("%w: %d values, %d medians", ErrSeriesMismatch, len(values), len(medians))
	}

	labels := make([]string, len(values))
	valueData := make([]opts.LineData, len(values))
	medianData := make([]opts.LineData, len(medians))

	for i := range values {
		labels[i] = strconv.Itoa(i + 1)
		valueData[i] = opts.LineData{Value: values[i]}
		medianData[i] = opts.LineData{Value: medians[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Running median", Subtitle: strconv.Itoa(len(values)) + " values"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Observation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Value", valueData,
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1, Opacity: opts.Float(0.5)}),
	)
	line.AddSeries("Median", medianData,
		charts.WithLineChartOpts(opts.LineChart{Step: "end"}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
