// Package plot renders an HTML chart page of the consolidated matrix, one
// bar chart per billing month for a single anchor column across its cycles.
package plot

import (
	"errors"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
)

// ErrColumnOutOfRange indicates the requested chart column does not exist in
// the anchor list.
var ErrColumnOutOfRange = errors.New("chart column out of range")

// WriteChart renders one bar chart per billing month with data, plotting the
// given anchor column across cycles. Cycles with no data stay on the axis at
// zero height, keeping the gaps as visible in the chart as they are in the
// CSV.
func WriteChart(w io.Writer, m *billing.Matrix, anchors anchor.Spec, column int) error {
	if column < 0 || column >= len(anchors) {
		return ErrColumnOutOfRange
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, month := range m.MonthsWithData() {
		page.AddCharts(monthChart(m, month, anchors[column].Heading, column))
	}

	return page.Render(w)
}

func monthChart(m *billing.Matrix, month int, heading string, column int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    billing.MonthName(month),
			Subtitle: heading,
		}),
	)

	labels := make([]string, 0, m.CyclesPerMonth())
	values := make([]opts.BarData, 0, m.CyclesPerMonth())

	for cycle := 1; cycle <= m.CyclesPerMonth(); cycle++ {
		labels = append(labels, strconv.Itoa(cycle))
		values = append(values, opts.BarData{Value: cellValue(m.Cell(month, cycle), column)})
	}

	bar.SetXAxis(labels).AddSeries(heading, values)

	return bar
}

func cellValue(cell billing.Cell, column int) int {
	if !cell.HasData || column >= len(cell.Fields) || cell.Fields[column].Missing() {
		return 0
	}

	return cell.Fields[column].Value
}
