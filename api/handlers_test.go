package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/config"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// plainTextPages treats an entire upload as a single text page, so
// handler tests exercise the pipeline without binary PDF fixtures.
type plainTextPages struct{}

func (plainTextPages) PageTexts(r io.ReaderAt, size int64) ([]string, error) {
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return []string{string(buf)}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	h, err := api.NewHandler(cfg, plainTextPages{})
	require.NoError(t, err)
	return api.NewRouter(h)
}

func multipartRequest(t *testing.T, url string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

func TestGetSchedule_ReturnsFullMonth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?year=2026&month=3&team=team-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dto api.ScheduleDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))

	assert.Len(t, dto.Days, 31)
	assert.Equal(t, 31, dto.WorkDays+dto.OffDays)
	// March 2026 has 22 weekdays and no holidays: 22 x 8.
	assert.Equal(t, "176.00", dto.Obligation)
	assert.Equal(t, "team-1", dto.Team.Key)
}

func TestGetSchedule_UnknownTeam(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?year=2026&month=3&team=team-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSchedule_InvalidMonth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule?year=2026&month=13&team=team-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportScheduleCSV(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/export.csv?year=2026&month=3&team=team-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "date,day,week,status,note,hours")
}

// =============================================================================
// RECONCILIATION ENDPOINT
// =============================================================================

func TestReconcile_NoFiles_InputIncomplete(t *testing.T) {
	// GIVEN: Parameters but no uploaded report at all
	// WHEN: Posting a reconciliation
	// THEN: 400; the pipeline does not run

	router := newTestRouter(t)

	req := multipartRequest(t, "/api/reconciliation",
		map[string]string{"year": "2026", "month": "1", "team": "team-1"}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Details, "no report files uploaded")
}

func TestReconcile_PreviousReportOnly(t *testing.T) {
	// GIVEN: A prior-period report naming one team-1 employee, cutoff at
	//        month end so no future days remain
	// WHEN: Posting a reconciliation for January 2026
	// THEN: Every team-1 employee appears once; the matched employee
	//       carries the extracted balance, the rest have no data

	router := newTestRouter(t)

	page := "Mesačný výkaz\nVisnyai Sándor\nPrenášaný nadčas do nasledujúceho mesiaca +54:56\n"
	req := multipartRequest(t, "/api/reconciliation",
		map[string]string{
			"year": "2026", "month": "1", "team": "team-1", "cutoff_day": "31",
		},
		map[string]string{"previous": page})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.ReconciliationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "additive", resp.Formula)
	require.Len(t, resp.Rows, 5) // team-1 roster
	assert.Len(t, resp.Chart, 5)

	var vis *api.ReconciliationRowDTO
	for i := range resp.Rows {
		if resp.Rows[i].Code == "vis" {
			vis = &resp.Rows[i]
		} else {
			assert.False(t, resp.Rows[i].HasData)
		}
	}
	require.NotNil(t, vis)

	assert.True(t, vis.HasData)
	assert.Equal(t, "54.93", vis.BroughtForward)
	assert.Equal(t, "0.00", vis.FuturePlanned)
	// January 2026 obligation: 20 non-holiday weekdays x 8 = 160.
	assert.Equal(t, "160.00", vis.Obligation)
	// 54.93 + 0 + 0 - 160
	assert.Equal(t, "-105.07", vis.Forecast)
	assert.Equal(t, "at_risk", vis.Status)
	assert.Contains(t, vis.Note, "105.07")
}

func TestReconcile_ExportCSV(t *testing.T) {
	router := newTestRouter(t)

	page := "Visnyai Sándor\nČas v práci (netto) 100:00\n"
	req := multipartRequest(t, "/api/reconciliation/export.csv",
		map[string]string{
			"year": "2026", "month": "1", "team": "team-1", "cutoff_day": "15",
		},
		map[string]string{"current": page})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "brought_forward")
	assert.Contains(t, rec.Body.String(), "vis")
}
