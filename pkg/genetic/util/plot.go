package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/youstinus/ga-tests/pkg/genetic/algorithms"
)

// PlotProgress renders a line chart of the best, mean and worst fitness of
// every generation to an HTML file at path.
func PlotProgress(history []algorithms.GenerationStats, problemName, path string) error {
	if len(history) == 0 {
		return fmt.Errorf("history is empty for %s", problemName)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s progress for %s", algorithms.Name, problemName),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(history))
	best := make([]opts.LineData, len(history))
	mean := make([]opts.LineData, len(history))
	worst := make([]opts.LineData, len(history))
	for i, s := range history {
		generations[i] = s.Generation
		best[i] = opts.LineData{Value: s.Best}
		mean[i] = opts.LineData{Value: s.Mean}
		worst[i] = opts.LineData{Value: s.Worst}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Mean", mean).
		AddSeries("Worst", worst).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
