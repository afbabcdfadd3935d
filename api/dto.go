/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the dashboard frontend. These decouple the domain
  model from the API contract; hour values are serialized as fixed
  2-decimal strings so the UI never re-rounds decimals.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Response: wrappers around a set of DTOs

SEE ALSO:
  - handlers.go: builds these from domain values
*/
package api

// =============================================================================
// ROSTER
// =============================================================================

// TeamDTO represents a configured team.
type TeamDTO struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	WeekendParity string `json:"weekend_parity"`
}

// EmployeeDTO represents one roster entry.
type EmployeeDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// =============================================================================
// SCHEDULE
// =============================================================================

// ScheduleDayDTO is one log-sheet row.
type ScheduleDayDTO struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Week     int    `json:"week"`
	EvenWeek bool   `json:"even_week"`
	LongWeek bool   `json:"long_week"`
	Holiday  bool   `json:"holiday"`
	Status   string `json:"status"`
	Note     string `json:"note"`
	Hours    string `json:"hours"`
}

// ScheduleDTO is the month view with the dashboard aggregates.
type ScheduleDTO struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Team        TeamDTO          `json:"team"`
	ShortFriday bool             `json:"short_friday"`
	Days        []ScheduleDayDTO `json:"days"`
	TotalHours  string           `json:"total_hours"`
	WorkDays    int              `json:"work_days"`
	OffDays     int              `json:"off_days"`
	Obligation  string           `json:"obligation"`
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// ReconciliationRowDTO is the forecast for one employee.
type ReconciliationRowDTO struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Team           string `json:"team"`
	BroughtForward string `json:"brought_forward"`
	WorkedSoFar    string `json:"worked_so_far"`
	FuturePlanned  string `json:"future_planned"`
	Obligation     string `json:"obligation"`
	Forecast       string `json:"forecast"`
	HasData        bool   `json:"has_data"`
	Status         string `json:"status"`
	Note           string `json:"note,omitempty"`
}

// ChartPointDTO feeds the dashboard's forecast chart.
type ChartPointDTO struct {
	Name     string  `json:"name"`
	Forecast float64 `json:"forecast"`
}

// ReconciliationResponse is one completed reconciliation run. Runs are
// transient: the ID identifies the response in logs, nothing is stored
// server-side.
type ReconciliationResponse struct {
	RunID     string                 `json:"run_id"`
	Year      int                    `json:"year"`
	Month     int                    `json:"month"`
	Team      string                 `json:"team"`
	CutoffDay int                    `json:"cutoff_day"`
	Formula   string                 `json:"formula"`
	Rows      []ReconciliationRowDTO `json:"rows"`
	Chart     []ChartPointDTO        `json:"chart"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
