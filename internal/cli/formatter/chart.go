package formatter

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	minChartWidth = 20
	chartHeight   = 12
)

// RenderDayChart draws one bar per day, in hours.
func RenderDayChart(days []domain.DayReport, width int) string {
	if len(days) == 0 {
		return Dim("No work recorded in this range.") + "\n"
	}
	if width < minChartWidth {
		width = minChartWidth
	}

	chart := barchart.New(width, chartHeight)
	bars := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		style := lipgloss.NewStyle().Foreground(ColorGreen)
		if d.TotalMinutes == 0 {
			style = lipgloss.NewStyle().Foreground(ColorDim)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  d.Date.Format(domain.DateLayout),
				Value: float64(d.TotalMinutes) / 60.0,
				Style: style,
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View() + "\n"
}
