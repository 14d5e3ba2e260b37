package run

import (
	"bytes"
	"fmt"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"github.com/voltlab/regen2go/cmd/global"
	"github.com/voltlab/regen2go/internal/ui"
	"time"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the saved simulation runs to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers := getPersistence()

		records, err := pers.ListRuns()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			ui.Info("No saved runs.")
			return nil
		}

		rows := [][]string{}
		for _, record := range records {
			rows = append(rows, []string{
				record.Id,
				record.Result.RegulatorId,
				record.CreatedAt.Format(time.RFC3339),
				fmt.Sprintf("%d", len(record.Result.Times)),
				fmt.Sprintf("%.2f", record.Result.MaxCurrent()),
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Regulator", "Created", "Ticks", "Max (A)"},
			Rows:    rows,
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
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
