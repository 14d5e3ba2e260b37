package run

import (
	"github.com/spf13/cobra"
	"github.com/voltlab/regen2go/internal/simulation"
	"github.com/voltlab/regen2go/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the response of a saved simulation run to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers := getPersistence()

		record, err := pers.LoadRun(runId)
		if err != nil {
			return err
		}

		ui.Printfln("Run %s (regulator %s, %d ticks)", record.Id, record.Result.RegulatorId, len(record.Result.Times))
		ui.Printfln("")
		ui.Printfln(simulation.RenderVoltagePlot(record.Result))
		ui.Printfln("")
		ui.Printfln(simulation.RenderCurrentPlot(record.Result))
		ui.Printfln("")
		ui.Printfln("Active ticks: %d", record.Result.ActiveTicks())
		ui.Printfln("Max current: %.2f A", record.Result.MaxCurrent())
		ui.Printfln("Avg current: %.2f A", record.Result.AvgCurrent())
		ui.Printfln("Final current: %.2f A", record.Result.FinalCurrent())

		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
