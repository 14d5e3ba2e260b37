package run

import (
	"github.com/spf13/cobra"
	"github.com/voltlab/regen2go/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a saved simulation run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers := getPersistence()

		if err := pers.DeleteRun(runId); err != nil {
			return err
		}

		ui.Success("Deleted run %s", runId)
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
