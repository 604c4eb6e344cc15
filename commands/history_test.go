package commands

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"

	"apartment-prices/models"
)

func TestRenderHistoryFilter(t *testing.T) {
	rows := []models.HistoryRow{
		{Date: "10/17/26", Property: "Cityscape Residences", Floorplan: "A1", Rent: "$1100", BedBath: "1 BR / 1 BA", SqFt: "700 SqFt"},
		{Date: "10/17/26", Property: "Broadstone Roosevelt Row", Floorplan: "S1", Rent: "$1050", BedBath: "Studio BR / 1 BA", SqFt: "550 SqFt"},
	}

	tw := table.NewWriter()
	renderHistory(tw, rows, "Cityscape Residences")
	out := tw.Render()

	if !strings.Contains(out, "$1100") {
		t.Errorf("expected Cityscape row in:\n%s", out)
	}
	if strings.Contains(out, "Broadstone") {
		t.Errorf("filtered property should not appear in:\n%s", out)
	}
}
