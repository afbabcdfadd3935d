package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/warp/shift-engine/reconcile"
)

const reconciliationSheet = "Reconciliation"

// WriteReconciliationXLSX writes the forecast table as a spreadsheet:
// bold header, forecast cells filled red when negative and green
// otherwise, and a bar chart of forecast balance per employee embedded
// next to the table.
func WriteReconciliationXLSX(w io.Writer, rows []reconcile.Row, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reconciliationSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	atRiskStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Font: &excelize.Font{Color: "9C0006"},
	})
	if err != nil {
		return err
	}
	safeStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Font: &excelize.Font{Color: "006100"},
	})
	if err != nil {
		return err
	}

	headers := []string{
		"Code", "Name", "Team", "Brought forward", "Worked so far",
		"Future planned", "Obligation", "Forecast", "Has data", "Status", "Note",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reconciliationSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(reconciliationSheet, "A1", "K1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []interface{}{
			r.Code,
			r.Name,
			r.TeamKey,
			r.BroughtForward.InexactFloat64(),
			r.WorkedSoFar.InexactFloat64(),
			r.FuturePlanned.InexactFloat64(),
			r.Obligation.InexactFloat64(),
			r.Forecast.InexactFloat64(),
			r.HasData,
			string(r.Status),
			r.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reconciliationSheet, cell, v); err != nil {
				return err
			}
		}

		forecastCell := fmt.Sprintf("H%d", rowNum)
		style := safeStyle
		if r.Forecast.IsNegative() {
			style = atRiskStyle
		}
		if err := f.SetCellStyle(reconciliationSheet, forecastCell, forecastCell, style); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		lastRow := len(rows) + 1
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$H$1", reconciliationSheet),
				Categories: fmt.Sprintf("%s!$B$2:$B$%d", reconciliationSheet, lastRow),
				Values:     fmt.Sprintf("%s!$H$2:$H$%d", reconciliationSheet, lastRow),
			}},
			Title:  []excelize.RichTextRun{{Text: title}},
			Legend: excelize.ChartLegend{Position: "none"},
		}
		if err := f.AddChart(reconciliationSheet, "M2", chart); err != nil {
			return err
		}
	}

	return f.Write(w)
}
