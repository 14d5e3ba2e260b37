package simulation

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/voltlab/regen2go/internal/util"
)

// RenderCurrentPlot renders the commanded braking current of a run as
// a terminal graph.
func RenderCurrentPlot(result Result) string {
	return asciigraph.Plot(result.Currents,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.Caption("Regen current (A) / time"),
	)
}

// RenderVoltagePlot renders the sampled bus voltage of a run as a
// terminal graph.
func RenderVoltagePlot(result Result) string {
	return asciigraph.Plot(result.Voltages,
		asciigraph.Height(15),
		asciigraph.Width(100),
		asciigraph.Caption("Bus voltage (V) / time"),
	)
}

// WriteCSV exports the run as CSV, written atomically so a half
// finished export is never observed by downstream tooling.
func WriteCSV(result Result, path string) error {
	var builder strings.Builder
	builder.WriteString("time,voltage,current,zone\n")
	for i := range result.Times {
		builder.WriteString(fmt.Sprintf("%g,%g,%g,%s\n",
			result.Times[i], result.Voltages[i], result.Currents[i], result.Zones[i]))
	}
	return util.WriteStringToFileAtomic(builder.String(), path)
}
