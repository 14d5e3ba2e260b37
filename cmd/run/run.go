package run

import (
	"github.com/spf13/cobra"
	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/persistence"
	"github.com/voltlab/regen2go/internal/ui"
)

var runId string

var Command = &cobra.Command{
	Use:              "run",
	Short:            "Saved simulation run related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&runId,
		"id", "i",
		"",
		"Run ID as printed by 'run list'",
	)
}

func getPersistence() persistence.Persistence {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	err := configuration.Validate()
	if err != nil {
		ui.Fatal(err.Error())
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}
	return pers
}
