package regulator

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/voltlab/regen2go/internal/configuration"
)

var regulatorId string

var Command = &cobra.Command{
	Use:              "regulator",
	Short:            "Regulator related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&regulatorId,
		"id", "i",
		"",
		"Regulator ID as specified in the config",
	)
}

func getRegulatorConfig(id string, regulators []configuration.RegulatorConfig) (*configuration.RegulatorConfig, error) {
	availableRegulatorIds := []string{}
	for _, regulatorConf := range regulators {
		availableRegulatorIds = append(availableRegulatorIds, regulatorConf.ID)
		if id == regulatorConf.ID {
			return &regulatorConf, nil
		}
	}

	return nil, fmt.Errorf("no regulator with id found: %s, options: %s", id, availableRegulatorIds)
}
