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
	"hsetrack_backend/internals/features/indicators/controller"
	"hsetrack_backend/internals/features/indicators/route"
	"hsetrack_backend/internals/features/indicators/service"
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

	ctl := controller.NewIndicatorController(service.NewService(store, broadcast.NewHub(), 2026, logger.Discard()), logger.Discard())
	app := fiber.New()
	route.IndicatorRoutes(app.Group("/api"), ctl)
	route.IndicatorAdminRoutes(app.Group("/api/a"), ctl)
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

type indicatorOut struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Actual string `json:"actual"`
	Status string `json:"status"`
}

func TestIndicatorEndpoints(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, http.MethodPost, "/api/a/ll-indicators/2026/leading",
		`{"name":"  Safety Walk ","target":"12","actual":"4/12","intent":"Visible leadership"}`)
	require.Equal(t, fiber.StatusCreated, status)
	var created indicatorOut
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Safety Walk", created.Name)
	assert.Equal(t, "on-track", created.Status)

	status, env = do(t, app, http.MethodPatch, "/api/a/ll-indicators/2026/leading/1", `{"actual":"12/12"}`)
	require.Equal(t, fiber.StatusOK, status)
	var patched indicatorOut
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, "achieved", patched.Status)

	status, env = do(t, app, http.MethodPatch, "/api/a/ll-indicators/2026/leading/1", `{"name":null}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "name")

	status, _ = do(t, app, http.MethodPost, "/api/a/ll-indicators/2026/sideways", `{"name":"Nope"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, http.MethodPatch, "/api/a/ll-indicators/2026/lagging/7", `{"actual":"1"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = do(t, app, http.MethodGet, "/api/ll-indicators/2026", "")
	require.Equal(t, fiber.StatusOK, status)
	var year struct {
		Lagging []indicatorOut `json:"lagging"`
		Leading []indicatorOut `json:"leading"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &year))
	assert.Empty(t, year.Lagging)
	require.Len(t, year.Leading, 1)
	assert.Equal(t, "12/12", year.Leading[0].Actual)

	status, _ = do(t, app, http.MethodDelete, "/api/a/ll-indicators/2026/leading/1", "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, http.MethodDelete, "/api/a/ll-indicators/2026/leading/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestIndicatorSaveYearAndExport(t *testing.T) {
	app := newApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/a/ll-indicators/years", `{"year":2027}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = do(t, app, http.MethodPut, "/api/a/ll-indicators/2027", `{
		"lagging":[{"name":"Fatality","target":"0","actual":"0"},{"name":"LTI","target":"0","actual":"1"}],
		"leading":[{"name":"PTW Audit","target":"95%","actual":"80%"}]}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env := do(t, app, http.MethodGet, "/api/ll-indicators/years", "")
	require.Equal(t, fiber.StatusOK, status)
	var years []int
	require.NoError(t, json.Unmarshal(env.Data, &years))
	assert.Equal(t, []int{2027, 2026, 2025, 2024}, years)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ll-indicators/2027/export.csv", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "HSE_LL_Indicator_2027.csv")
	raw, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Lagging,2,,LTI,0,1,", lines[2])
	assert.Equal(t, "Leading,1,,PTW Audit,95%,80%,", lines[3])

	status, _ = do(t, app, http.MethodGet, "/api/ll-indicators/1850/export.csv", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
