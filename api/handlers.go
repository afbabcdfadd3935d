/*
handlers.go - HTTP API handlers for the shift engine

PURPOSE:
  Exposes schedule generation and balance reconciliation via REST. The
  dashboard frontend collects year/month/team selections and report
  uploads; these handlers run the pipeline and return tables, chart
  series, and downloadable exports.

ENDPOINTS:
  Roster:
    GET  /api/teams                       Configured teams
    GET  /api/employees                   Employee roster

  Schedule:
    GET  /api/schedule                    Month log sheet + totals
    GET  /api/schedule/export.csv         Log sheet as CSV
    GET  /api/schedule/export.pdf         Printable sheet

  Reconciliation (multipart uploads, field names "previous"/"current"):
    POST /api/reconciliation              Forecast table + chart series
    POST /api/reconciliation/export.csv   Table as CSV
    POST /api/reconciliation/export.xlsx  Formatted spreadsheet

REQUEST FLOW:
  1. Parse parameters / uploaded files
  2. Extract report values (report package)
  3. Run plan + reconciliation (rota, reconcile packages)
  4. Serialize, or stream an export artifact

ERROR HANDLING:
  - 400: missing uploads, unknown team, invalid year/month/cutoff
  - 500: unexpected processing failures (also caught by Recoverer)
  Extraction misses and unparsable tokens are NOT errors: they surface
  as has_data=false rows, and the run always completes.

STATE:
  None. Every request recomputes everything from its own inputs; no
  result is cached or persisted across calls.

SEE ALSO:
  - dto.go: response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/export"
	"github.com/warp/shift-engine/reconcile"
	"github.com/warp/shift-engine/report"
	"github.com/warp/shift-engine/rota"
)

// maxUploadBytes bounds multipart parsing; reports are single-digit
// page counts, far below this.
const maxUploadBytes = 32 << 20

// Compile-time check that the rota engine satisfies the reconciler's
// planner dependency.
var _ reconcile.Planner = (*rota.Engine)(nil)

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds the immutable dependencies for all endpoints.
type Handler struct {
	Config  *config.Config
	Pages   report.PageSource
	Formula reconcile.Formula
}

// NewHandler wires a handler from validated configuration.
func NewHandler(cfg *config.Config, pages report.PageSource) (*Handler, error) {
	formula, err := reconcile.ParseFormula(cfg.Formula)
	if err != nil {
		return nil, err
	}
	return &Handler{Config: cfg, Pages: pages, Formula: formula}, nil
}

// engineFor builds a rule engine with the request's short-Friday
// setting. Construction is a map build over two teams; per-request cost
// is negligible and keeps the handler stateless.
func (h *Handler) engineFor(shortFriday bool) (*rota.Engine, error) {
	return rota.New(h.Config.Teams, h.Config.Holidays, h.Config.Shifts, shortFriday)
}

// =============================================================================
// ROSTER ENDPOINTS
// =============================================================================

// ListTeams returns the configured teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	dtos := make([]TeamDTO, 0, len(h.Config.Teams))
	for _, t := range h.Config.Teams {
		dtos = append(dtos, TeamDTO{Key: t.Key, Name: t.Name, WeekendParity: string(t.Parity)})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployees returns the static roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	dtos := make([]EmployeeDTO, 0, len(h.Config.Employees))
	for _, e := range h.Config.Employees {
		dtos = append(dtos, EmployeeDTO{Code: e.Code, Name: e.Name, Team: e.TeamKey})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

type scheduleParams struct {
	year        int
	month       int
	teamKey     string
	shortFriday bool
}

func (h *Handler) parseScheduleParams(r *http.Request) (scheduleParams, error) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return scheduleParams{}, fmt.Errorf("invalid year %q", q.Get("year"))
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return scheduleParams{}, fmt.Errorf("invalid month %q", q.Get("month"))
	}
	p := scheduleParams{
		year:        year,
		month:       month,
		teamKey:     q.Get("team"),
		shortFriday: h.Config.ShortFriday,
	}
	if v := q.Get("short_friday"); v != "" {
		p.shortFriday = v == "true" || v == "1"
	}
	return p, nil
}

func (h *Handler) buildSchedule(p scheduleParams) (*rota.MonthSchedule, *rota.Engine, error) {
	engine, err := h.engineFor(p.shortFriday)
	if err != nil {
		return nil, nil, err
	}
	sched, err := engine.Schedule(p.year, p.month, p.teamKey)
	if err != nil {
		return nil, nil, err
	}
	return sched, engine, nil
}

// GetSchedule returns the month log sheet with totals and the statutory
// obligation.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseScheduleParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule parameters", err)
		return
	}
	sched, engine, err := h.buildSchedule(p)
	if err != nil {
		writeError(w, statusFor(err), "Failed to build schedule", err)
		return
	}
	obligation, err := engine.Obligation(p.year, p.month)
	if err != nil {
		writeError(w, statusFor(err), "Failed to compute obligation", err)
		return
	}

	dto := ScheduleDTO{
		Year:  sched.Year,
		Month: int(sched.Month),
		Team: TeamDTO{
			Key:           sched.Team.Key,
			Name:          sched.Team.Name,
			WeekendParity: string(sched.Team.Parity),
		},
		ShortFriday: p.shortFriday,
		TotalHours:  sched.TotalHours.StringFixed(2),
		WorkDays:    sched.WorkDays,
		OffDays:     sched.OffDays,
		Obligation:  obligation.StringFixed(2),
	}
	for _, c := range sched.Days {
		status := "work"
		if c.Off() {
			status = "off"
		}
		dto.Days = append(dto.Days, ScheduleDayDTO{
			Date:     c.Date.String(),
			Day:      c.Date.Weekday().String(),
			Week:     c.Week,
			EvenWeek: c.EvenWeek,
			LongWeek: c.LongWeek,
			Holiday:  c.Holiday,
			Status:   status,
			Note:     c.Note,
			Hours:    c.NetHours.StringFixed(2),
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

// ExportScheduleCSV streams the log sheet as delimited text.
func (h *Handler) ExportScheduleCSV(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseScheduleParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule parameters", err)
		return
	}
	sched, _, err := h.buildSchedule(p)
	if err != nil {
		writeError(w, statusFor(err), "Failed to build schedule", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=schedule-%s-%d-%02d.csv`, p.teamKey, p.year, p.month))
	if err := export.WriteScheduleCSV(w, sched); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV", err)
	}
}

// ExportSchedulePDF streams the printable month sheet.
func (h *Handler) ExportSchedulePDF(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseScheduleParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule parameters", err)
		return
	}
	sched, _, err := h.buildSchedule(p)
	if err != nil {
		writeError(w, statusFor(err), "Failed to build schedule", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=schedule-%s-%d-%02d.pdf`, p.teamKey, p.year, p.month))
	if err := export.WriteSchedulePDF(w, sched); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write PDF", err)
	}
}

// =============================================================================
// RECONCILIATION ENDPOINTS
// =============================================================================

type reconcileParams struct {
	scheduleParams
	cutoffDay int
}

// runReconciliation parses the multipart request, extracts both report
// files, and produces the forecast rows. Shared by the JSON endpoint
// and both export endpoints.
func (h *Handler) runReconciliation(r *http.Request) ([]reconcile.Row, reconcileParams, error) {
	var p reconcileParams

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, p, fmt.Errorf("invalid multipart request: %w", err)
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		return nil, p, fmt.Errorf("invalid year %q", r.FormValue("year"))
	}
	month, err := strconv.Atoi(r.FormValue("month"))
	if err != nil {
		return nil, p, fmt.Errorf("invalid month %q", r.FormValue("month"))
	}
	cutoff := 0
	if v := r.FormValue("cutoff_day"); v != "" {
		cutoff, err = strconv.Atoi(v)
		if err != nil {
			return nil, p, fmt.Errorf("invalid cutoff_day %q", v)
		}
	}
	p = reconcileParams{
		scheduleParams: scheduleParams{
			year:        year,
			month:       month,
			teamKey:     r.FormValue("team"),
			shortFriday: h.Config.ShortFriday,
		},
		cutoffDay: cutoff,
	}
	if v := r.FormValue("short_friday"); v != "" {
		p.shortFriday = v == "true" || v == "1"
	}

	engine, err := h.engineFor(p.shortFriday)
	if err != nil {
		return nil, p, err
	}
	if p.teamKey != "" {
		if _, err := engine.Team(p.teamKey); err != nil {
			return nil, p, err
		}
	}

	previous := fileFor(r, "previous")
	current := fileFor(r, "current")
	if previous == nil && current == nil {
		return nil, p, errInputIncomplete
	}

	roster := h.Config.Roster(p.teamKey)
	broughtForward, err := h.extract(previous, roster, report.ModeCarryover)
	if err != nil {
		return nil, p, err
	}
	worked, err := h.extract(current, roster, report.ModeWorked)
	if err != nil {
		return nil, p, err
	}

	reconciler := &reconcile.Reconciler{
		Planner: engine,
		Roster:  h.Config.Employees,
		Formula: h.Formula,
	}
	rows, err := reconciler.Reconcile(reconcile.Input{
		Year:           p.year,
		Month:          p.month,
		TeamKey:        p.teamKey,
		CutoffDay:      p.cutoffDay,
		BroughtForward: broughtForward,
		Worked:         worked,
	})
	if err != nil {
		return nil, p, err
	}
	return rows, p, nil
}

// errInputIncomplete marks a request with no uploaded report at all:
// the pipeline does not run and the user is asked to supply files.
var errInputIncomplete = errors.New("no report files uploaded")

func fileFor(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// extract opens one uploaded report and runs a full extraction pass.
// The file is addressed via io.ReaderAt, so repeated passes always read
// from the start regardless of prior consumption. A nil header means
// the file was not uploaded; extraction yields no data.
func (h *Handler) extract(fh *multipart.FileHeader, roster report.Roster, mode report.Mode) (map[string]decimal.Decimal, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	pages, err := h.Pages.PageTexts(f, fh.Size)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
	}
	return report.Extract(pages, roster, mode), nil
}

// Reconcile runs the pipeline and returns the forecast table with the
// chart series.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	rows, p, err := h.runReconciliation(r)
	if err != nil {
		writeError(w, statusFor(err), "Reconciliation failed", err)
		return
	}

	resp := ReconciliationResponse{
		RunID:     uuid.NewString(),
		Year:      p.year,
		Month:     p.month,
		Team:      p.teamKey,
		CutoffDay: p.cutoffDay,
		Formula:   string(h.Formula),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, ReconciliationRowDTO{
			Code:           row.Code,
			Name:           row.Name,
			Team:           row.TeamKey,
			BroughtForward: row.BroughtForward.StringFixed(2),
			WorkedSoFar:    row.WorkedSoFar.StringFixed(2),
			FuturePlanned:  row.FuturePlanned.StringFixed(2),
			Obligation:     row.Obligation.StringFixed(2),
			Forecast:       row.Forecast.StringFixed(2),
			HasData:        row.HasData,
			Status:         string(row.Status),
			Note:           row.Note,
		})
		resp.Chart = append(resp.Chart, ChartPointDTO{
			Name:     row.Name,
			Forecast: row.Forecast.InexactFloat64(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ExportReconciliationCSV streams the forecast table as delimited text.
func (h *Handler) ExportReconciliationCSV(w http.ResponseWriter, r *http.Request) {
	rows, p, err := h.runReconciliation(r)
	if err != nil {
		writeError(w, statusFor(err), "Reconciliation failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=reconciliation-%d-%02d.csv`, p.year, p.month))
	if err := export.WriteReconciliationCSV(w, rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV", err)
	}
}

// ExportReconciliationXLSX streams the formatted spreadsheet.
func (h *Handler) ExportReconciliationXLSX(w http.ResponseWriter, r *http.Request) {
	rows, p, err := h.runReconciliation(r)
	if err != nil {
		writeError(w, statusFor(err), "Reconciliation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=reconciliation-%d-%02d.xlsx`, p.year, p.month))
	title := fmt.Sprintf("Forecast balance %d-%02d", p.year, p.month)
	if err := export.WriteReconciliationXLSX(w, rows, title); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write spreadsheet", err)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInputIncomplete),
		errors.Is(err, rota.ErrUnknownTeam),
		errors.Is(err, rota.ErrInvalidDate),
		errors.Is(err, config.ErrRosterInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
