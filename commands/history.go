package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"apartment-prices/models"
	"apartment-prices/storage"
)

var historyProperty string

func init() {
	historyCmd.Flags().StringVar(&historyProperty, "property", "", "only show rows for this property name")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Replays the recorded price history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := storage.NewCSVHistory(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer history.Close()

		rows, err := history.Rows(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		renderHistory(t, rows, historyProperty)
		return nil
	},
}

func renderHistory(t table.Writer, rows []models.HistoryRow, property string) {
	t.AppendHeader(table.Row{"Date", "Property", "Floorplan", "Rent", "Bed/Bath", "SqFt"})
	for _, r := range rows {
		if property != "" && r.Property != property {
			continue
		}
		t.AppendRow(table.Row{r.Date, r.Property, r.Floorplan, r.Rent, r.BedBath, r.SqFt})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
