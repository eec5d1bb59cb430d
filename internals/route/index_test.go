package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/configs"
	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	auditService "hsetrack_backend/internals/features/auditlogs/service"
	calendarService "hsetrack_backend/internals/features/calendar/service"
	documentService "hsetrack_backend/internals/features/documents/service"
	indicatorService "hsetrack_backend/internals/features/indicators/service"
	kpiService "hsetrack_backend/internals/features/kpi/service"
	programService "hsetrack_backend/internals/features/programs/service"
	reminderService "hsetrack_backend/internals/features/reminders/service"
	statisticsService "hsetrack_backend/internals/features/statistics/service"
	taskService "hsetrack_backend/internals/features/tasks/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/logger"
	seedPrograms "hsetrack_backend/internals/seeds/programs"
)

const jwtSecret = "route-test"

func newServer(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Discard()
	require.NoError(t, database.ConnectLocal(":memory:", nil, log))
	t.Cleanup(func() { database.LocalDB = nil })

	store := localstore.New(database.LocalDB)
	require.NoError(t, store.Migrate())

	hub := broadcast.NewHub()
	loader := programService.NewLoader(store, seedPrograms.NewEmbedded(), 2026, log)
	registry := programService.NewRegistry(loader, hub)
	t.Cleanup(registry.Close)
	engine := programService.NewEngine(loader, hub, nil, log)
	tasks := taskService.NewService(store, hub, log)
	calendar := calendarService.NewService(store, registry, tasks, log)
	calendar.Listen(hub)
	t.Cleanup(calendar.Close)

	app := fiber.New(fiber.Config{ErrorHandler: helper.JsonFiberError})
	SetupRoutes(app, Deps{
		Config:     &configs.Config{JWTSecret: jwtSecret, AppEnv: "test"},
		Log:        log,
		Loader:     loader,
		Registry:   registry,
		Engine:     engine,
		Tasks:      tasks,
		Calendar:   calendar,
		Statistics: statisticsService.NewService(registry),
		Documents:  documentService.NewService(store, hub, log),
		Reminders:  reminderService.NewService(registry, tasks, reminderService.LogSender{Log: log}, "http://hse.test", log),
		KPI:        kpiService.NewService(store, hub, 2026, log),
		Indicators: indicatorService.NewService(store, hub, 2026, log),
		Audit:      auditService.NewService(store, log),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(body, &out)
	return resp.StatusCode, out
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return tok
}

func TestHealth(t *testing.T) {
	app := newServer(t)

	status, body := call(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Disabled", body["remote"])
	assert.Equal(t, "test", body["environment"])
}

func TestPublicRoutesMounted(t *testing.T) {
	app := newServer(t)

	for _, path := range []string{
		"/api/programs",
		"/api/programs/stats",
		"/api/statistics",
		"/api/calendar/events",
		"/api/tasks",
		"/api/documents",
		"/api/partitions/otp/indonesia/narogong",
		"/api/kpi/years",
		"/api/kpi/2026",
		"/api/ll-indicators/years",
		"/api/ll-indicators/2025",
	} {
		status, _ := call(t, app, http.MethodGet, path, "")
		assert.Equal(t, fiber.StatusOK, status, path)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newServer(t)

	status, _ := call(t, app, http.MethodGet, "/api/a/reminders/pending", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/a/reminders/pending", adminToken(t))
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/a/calendar/rebuild", adminToken(t))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuditTrailRecordsAdminMutations(t *testing.T) {
	app := newServer(t)
	token := adminToken(t)

	status, _ := call(t, app, http.MethodPost, "/api/a/calendar/rebuild", token)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = call(t, app, http.MethodDelete, "/api/a/kpi/2026", token)
	require.Equal(t, fiber.StatusOK, status)
	// gagal (404) tidak masuk jejak audit
	status, _ = call(t, app, http.MethodDelete, "/api/a/kpi/2026", token)
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, app, http.MethodGet, "/api/a/audit-logs", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := call(t, app, http.MethodGet, "/api/a/audit-logs?limit=10", token)
	require.Equal(t, fiber.StatusOK, status)
	logs, ok := body["data"].([]any)
	require.True(t, ok, body)
	require.Len(t, logs, 2)

	latest := logs[0].(map[string]any)
	assert.Equal(t, "DELETE", latest["action"])
	assert.Equal(t, "Deleted", latest["action_label"])
	assert.Equal(t, "kpi", latest["resource"])
	assert.Equal(t, "2026", latest["record_id"])
	assert.Equal(t, "admin-1", latest["actor"])

	first := logs[1].(map[string]any)
	assert.Equal(t, "EXECUTE", first["action"])
	assert.Equal(t, "calendar", first["resource"])

	status, body = call(t, app, http.MethodGet, "/api/a/audit-logs?resource=calendar", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}
