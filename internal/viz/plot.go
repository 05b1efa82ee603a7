package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/antnav/internal/navigation"
)

// DistancePlot charts the home distance at every snapshot against the
// arrival threshold.
func DistancePlot(tr navigation.Trajectory, width, height int) string {
	data := tr.HomeDistances()
	if len(data) == 0 {
		return ""
	}

	threshold := make([]float64, len(data))
	for i := range threshold {
		threshold[i] = navigation.ArrivalThreshold
	}

	return asciigraph.PlotMany([][]float64{data, threshold},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("home distance (arrival < %.2f)", navigation.ArrivalThreshold)),
	)
}

// SeriesPlot charts a single series, one point per entry.
func SeriesPlot(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
