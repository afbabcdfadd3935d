/*
Package export renders schedule and reconciliation tables into
downloadable artifacts: delimited text, a formatted spreadsheet with
conditional coloring and an embedded chart, and a printable PDF sheet.

All writers stream to an io.Writer and hold no state; formatting
decisions (colors, column layout) live here so the domain packages stay
presentation-free.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/warp/shift-engine/reconcile"
	"github.com/warp/shift-engine/rota"
)

// WriteScheduleCSV writes the month log sheet: one row per calendar
// day, matching the dashboard table.
func WriteScheduleCSV(w io.Writer, sched *rota.MonthSchedule) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "day", "week", "status", "note", "hours"}); err != nil {
		return err
	}
	for _, c := range sched.Days {
		status := "work"
		if c.Off() {
			status = "off"
		}
		parity := "odd"
		if c.EvenWeek {
			parity = "even"
		}
		row := []string{
			c.Date.String(),
			c.Date.Weekday().String(),
			fmt.Sprintf("%d (%s)", c.Week, parity),
			status,
			c.Note,
			c.NetHours.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReconciliationCSV writes one row per employee of the forecast
// table.
func WriteReconciliationCSV(w io.Writer, rows []reconcile.Row) error {
	cw := csv.NewWriter(w)

	header := []string{
		"code", "name", "team", "brought_forward", "worked_so_far",
		"future_planned", "obligation", "forecast", "has_data", "status", "note",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Code,
			r.Name,
			r.TeamKey,
			r.BroughtForward.StringFixed(2),
			r.WorkedSoFar.StringFixed(2),
			r.FuturePlanned.StringFixed(2),
			r.Obligation.StringFixed(2),
			r.Forecast.StringFixed(2),
			strconv.FormatBool(r.HasData),
			string(r.Status),
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
