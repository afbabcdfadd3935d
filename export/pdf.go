package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/warp/shift-engine/rota"
)

// WriteSchedulePDF writes the month log sheet as a printable A4 sheet
// for the notice board.
func WriteSchedulePDF(w io.Writer, sched *rota.MonthSchedule) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // roster names carry diacritics
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Shift schedule %d-%02d", sched.Year, int(sched.Month))))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, tr(sched.Team.Name))
	pdf.Ln(10)

	widths := []float64{26, 28, 24, 18, 52, 18}
	headers := []string{"Date", "Day", "Week", "Status", "Note", "Hours"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range sched.Days {
		status := "work"
		if c.Off() {
			status = "off"
		}
		parity := "odd"
		if c.EvenWeek {
			parity = "even"
		}
		cells := []string{
			c.Date.String(),
			c.Date.Weekday().String(),
			fmt.Sprintf("%d (%s)", c.Week, parity),
			status,
			c.Note,
			c.NetHours.StringFixed(2),
		}
		for i, v := range cells {
			align := "L"
			if i == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %s hours over %d workdays (%d days off)",
		sched.TotalHours.StringFixed(2), sched.WorkDays, sched.OffDays))

	return pdf.Output(w)
}
