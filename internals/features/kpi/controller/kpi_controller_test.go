package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsetrack_backend/internals/broadcast"
	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/kpi/controller"
	"hsetrack_backend/internals/features/kpi/route"
	"hsetrack_backend/internals/features/kpi/service"
	"hsetrack_backend/internals/logger"
)

type envelope struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors"`
	Data    json.RawMessage     `json:"data"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	store := localstore.New(db)
	require.NoError(t, store.Migrate())

	ctl := controller.NewKPIController(service.NewService(store, broadcast.NewHub(), 2026, logger.Discard()), logger.Discard())
	app := fiber.New()
	route.KPIRoutes(app.Group("/api"), ctl)
	route.KPIAdminRoutes(app.Group("/api/a"), ctl)
	return app
}

func do(t *testing.T, app *fiber.App, method, url, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestKPIYearLifecycle(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, http.MethodPost, "/api/a/kpi/years", `{"year":2025}`)
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = do(t, app, http.MethodPost, "/api/a/kpi/years", `{"year":2025}`)
	assert.Equal(t, fiber.StatusConflict, status)
	status, env = do(t, app, http.MethodPost, "/api/a/kpi/years", `{"year":1999}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "year")

	status, env = do(t, app, http.MethodGet, "/api/kpi/years", "")
	require.Equal(t, fiber.StatusOK, status)
	var years []int
	require.NoError(t, json.Unmarshal(env.Data, &years))
	assert.Equal(t, []int{2026, 2025}, years)

	status, env = do(t, app, http.MethodPut, "/api/a/kpi/2025", `{
		"man_hours": 900000,
		"metrics": [
			{"id":" TRIR ","name":"Total Recordable Injury Rate (TRIR)","icon":"🏥","target":0.5,"result":0.55},
			{"id":"fatality","name":"Fatality","target":0,"result":1}
		]}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, http.MethodGet, "/api/kpi/2025", "")
	require.Equal(t, fiber.StatusOK, status)
	var got struct {
		ManHours int64 `json:"man_hours"`
		Metrics  []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"metrics"`
		OnTrack int `json:"on_track"`
		AtRisk  int `json:"at_risk"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(900000), got.ManHours)
	require.Len(t, got.Metrics, 2)
	assert.Equal(t, "trir", got.Metrics[0].ID)
	assert.Equal(t, "on-track", got.Metrics[0].Status)
	assert.Equal(t, "at-risk", got.Metrics[1].Status)
	assert.Equal(t, 1, got.OnTrack)
	assert.Equal(t, 1, got.AtRisk)

	status, _ = do(t, app, http.MethodPut, "/api/a/kpi/2025", `{"metrics":[{"id":"x","name":"X","target":-1}]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = do(t, app, http.MethodDelete, "/api/a/kpi/2025", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, http.MethodGet, "/api/kpi/2025", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = do(t, app, http.MethodGet, "/api/kpi/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestKPIExportCSV(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/kpi/2026/export.csv", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "HSE_KPI_2026.csv")

	raw, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "KPI Report for 2026", lines[0])
	assert.Equal(t, "Man Hours,0", lines[1])
	assert.Equal(t, "Icon,Metric,Target,Result,Status", lines[3])
	assert.Len(t, lines, 4+7)
}
