package regulator

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/voltlab/regen2go/internal"
	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/persistence"
	regulators "github.com/voltlab/regen2go/internal/regulator"
	"github.com/voltlab/regen2go/internal/simulation"
	"github.com/voltlab/regen2go/internal/ui"
	"time"
)

var (
	profileId string
	csvPath   string
	saveRun   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a regulator against a voltage profile and print the response",
	Long: `Feeds a recorded or built-in bus voltage profile into a regulator
and prints the resulting regen current response. Runs are deterministic:
the same profile and parameters always produce the same response.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err := configuration.Validate()
		if err != nil {
			ui.Fatal(err.Error())
		}

		regulatorConf, err := getRegulatorConfig(regulatorId, configuration.CurrentConfig.Regulators)
		if err != nil {
			return err
		}

		profile, err := simulation.ResolveProfile(profileId, configuration.CurrentConfig.Profiles)
		if err != nil {
			return err
		}

		reg, err := regulators.NewRegulator(regulatorConf.ID, internal.RegulatorParams(*regulatorConf))
		if err != nil {
			return err
		}

		result := simulation.Run(reg, profile)

		ui.Printfln(simulation.RenderVoltagePlot(result))
		ui.Printfln("")
		ui.Printfln(simulation.RenderCurrentPlot(result))
		ui.Printfln("")
		ui.Printfln("Ticks: %d", len(result.Times))
		ui.Printfln("Active ticks: %d", result.ActiveTicks())
		ui.Printfln("Max current: %.2f A", result.MaxCurrent())
		ui.Printfln("Avg current: %.2f A", result.AvgCurrent())
		ui.Printfln("Final current: %.2f A", result.FinalCurrent())

		stats := reg.GetStatistics()
		ui.Printfln("State resets: %d", stats.StateResetCount)

		if csvPath != "" {
			if err := simulation.WriteCSV(result, csvPath); err != nil {
				return err
			}
			ui.Success("Wrote %s", csvPath)
		}

		if saveRun {
			pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
			if err := pers.Init(); err != nil {
				return err
			}
			record := persistence.RunRecord{
				Id:        fmt.Sprintf("%s-%s-%d", regulatorConf.ID, profileId, time.Now().Unix()),
				CreatedAt: time.Now(),
				Result:    result,
			}
			if err := pers.SaveRun(record); err != nil {
				return err
			}
			ui.Success("Saved run %s", record.Id)
		}

		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVarP(
		&profileId,
		"profile", "p",
		"step-response",
		fmt.Sprintf("Profile ID as specified in the config, or one of: %s", simulation.BuiltinProfileIds()),
	)
	simulateCmd.Flags().StringVarP(
		&csvPath,
		"csv", "",
		"",
		"Write the response as CSV to the given file",
	)
	simulateCmd.Flags().BoolVarP(
		&saveRun,
		"save", "s",
		false,
		"Save the run to the database",
	)
	Command.AddCommand(simulateCmd)
}
