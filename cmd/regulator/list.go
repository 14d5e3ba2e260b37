package regulator

import (
	"bytes"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"github.com/voltlab/regen2go/cmd/global"
	"github.com/voltlab/regen2go/internal"
	"github.com/voltlab/regen2go/internal/configuration"
	regulators "github.com/voltlab/regen2go/internal/regulator"
	"github.com/voltlab/regen2go/internal/ui"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// number of ticks to hold a sweep voltage before sampling the
// settled output current
const sweepSettleTicks = 500

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured regulator(s) and their control band response to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate()
		if err != nil {
			ui.Fatal(err.Error())
		}

		for idx, regulatorConf := range configuration.CurrentConfig.Regulators {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			// print table
			tab := table.Table{
				Headers: []string{"ID", "Source", "Target (V)", "Threshold (V)", "Minimum (V)", "Kp", "Ki", "Kd", "Max (A)"},
				Rows: [][]string{
					{
						regulatorConf.ID,
						regulatorConf.Source,
						fmt.Sprintf("%.2f", regulatorConf.TargetVoltage),
						fmt.Sprintf("%.2f", regulatorConf.ThresholdVoltage),
						fmt.Sprintf("%.2f", regulatorConf.MinimumVoltage),
						fmt.Sprintf("%.2f", regulatorConf.Kp),
						fmt.Sprintf("%.2f", regulatorConf.Ki),
						fmt.Sprintf("%.2f", regulatorConf.Kd),
						fmt.Sprintf("%.2f", regulatorConf.MaxCurrent),
					},
				},
			}
			var buf bytes.Buffer
			tableErr := tab.WriteTable(&buf, &table.Config{
				ShowIndex:       false,
				Color:           !global.NoColor,
				AlternateColors: true,
				TitleColorCode:  ansi.ColorCode("white+buf"),
				AltColorCodes: []string{
					ansi.ColorCode("white"),
					ansi.ColorCode("white:236"),
				},
			})
			if tableErr != nil {
				panic(tableErr)
			}
			tableString := buf.String()
			ui.Printfln(tableString)

			graphValues, err := bandResponse(regulatorConf)
			if err != nil {
				return err
			}

			keys := maps.Keys(graphValues)
			slices.Sort(keys)

			values := make([]float64, 0, len(keys))
			for _, k := range keys {
				values = append(values, graphValues[k])
			}

			caption := "Settled regen current (A) / bus voltage (V)"
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}

		return nil
	},
}

// bandResponse sweeps the bus voltage across the control band and
// samples the settled output current at each point.
func bandResponse(config configuration.RegulatorConfig) (map[float64]float64, error) {
	start := config.MinimumVoltage - 0.5
	stop := config.ThresholdVoltage + 0.5
	step := (stop - start) / 100

	graphValues := map[float64]float64{}
	for voltage := start; voltage <= stop; voltage += step {
		reg, err := regulators.NewRegulator(config.ID, internal.RegulatorParams(config))
		if err != nil {
			return nil, err
		}
		for i := 0; i < sweepSettleTicks; i++ {
			reg.Tick(voltage)
		}
		graphValues[voltage] = reg.GetLastOutput()
	}
	return graphValues, nil
}

func init() {
	Command.AddCommand(listCmd)
}
