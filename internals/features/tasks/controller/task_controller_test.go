package controller

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsetrack_backend/internals/broadcast"
	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/tasks/service"
	helperOSS "hsetrack_backend/internals/helpers/oss"
	"hsetrack_backend/internals/logger"
)

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

func newApp(t *testing.T, blob helperOSS.BlobStore) *fiber.App {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	store := localstore.New(db)
	require.NoError(t, store.Migrate())

	svc := service.NewService(store, broadcast.NewHub(), logger.Discard())
	ctl := NewTaskController(svc, blob, logger.Discard())

	app := fiber.New()
	g := app.Group("/api/tasks")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/export.csv", ctl.ExportCSV)
	g.Get("/export.xlsx", ctl.ExportXLSX)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/attachments", ctl.UploadAttachment)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func jsonReq(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestList_FiltersAndPaginates(t *testing.T) {
	app := newApp(t, nil)

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/tasks?region=indonesia&per_page=2", nil))
	assert.Equal(t, fiber.StatusOK, status)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Once (Ad-hoc)", items[0]["frequency_label"])
}

func TestExport_UsesListFilters(t *testing.T) {
	app := newApp(t, nil)

	_, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/tasks?region=indonesia&per_page=500", nil))
	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.NotEmpty(t, items)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks/export.csv?region=indonesia", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "HSE_Tasks_")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(items)+1)
	assert.Equal(t, []string{"Code", "Title", "Program"}, records[0][:3])
	assert.Equal(t, items[0]["code"], records[1][0])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks/export.xlsx", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	body, _ := io.ReadAll(resp.Body)
	// xlsx = zip
	assert.True(t, bytes.HasPrefix(body, []byte("PK")))
}

func TestCreate_ValidatesPayload(t *testing.T) {
	app := newApp(t, nil)

	status, env := do(t, app, jsonReq(http.MethodPost, "/api/tasks", `{"code":"X","title":"ab","implementation_date":"15/06/2026"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Contains(t, env.Errors, "title")
	assert.Contains(t, env.Errors, "implementationdate")
}

func TestCreatePatchDelete(t *testing.T) {
	app := newApp(t, nil)

	status, env := do(t, app, jsonReq(http.MethodPost, "/api/tasks",
		`{"code":"HSE-020","title":"Spill Kit Check","implementation_date":"2026-08-01","frequency":"Quarterly","pic_email":" PIC@Company.com "}`))
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := created["id"].(string)
	assert.Equal(t, "pic@company.com", created["pic_email"])
	assert.Equal(t, "quarterly", created["frequency"])

	status, env = do(t, app, jsonReq(http.MethodPatch, "/api/tasks/"+id, `{"status":"In Progress"}`))
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var patched map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, "InProgress", patched["status"])
	assert.Equal(t, "Spill Kit Check", patched["title"])

	status, _ = do(t, app, jsonReq(http.MethodPatch, "/api/tasks/"+id, `{"status":"Done-ish"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/tasks/"+id, nil))
	assert.Equal(t, fiber.StatusOK, status)

	status, env = do(t, app, httptest.NewRequest(http.MethodGet, "/api/tasks/"+id, nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func multipartReq(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, _ = fw.Write(content)
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadAttachment(t *testing.T) {
	t.Run("without blob store", func(t *testing.T) {
		app := newApp(t, nil)
		status, _ := do(t, app, multipartReq(t, "/api/tasks/2/attachments", "a.pdf", []byte("%PDF")))
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
	})

	t.Run("stores attachment on task", func(t *testing.T) {
		app := newApp(t, &helperOSS.MockBlobStore{})
		status, env := do(t, app, multipartReq(t, "/api/tasks/2/attachments", "inspection.pdf", []byte("%PDF-1.4")))
		require.Equal(t, fiber.StatusCreated, status, env.Message)

		var task map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &task))
		assert.Equal(t, true, task["has_attachment"])
		atts := task["attachments"].([]any)
		require.Len(t, atts, 1)
		assert.Equal(t, "inspection.pdf", atts[0].(map[string]any)["filename"])
	})

	t.Run("unknown task", func(t *testing.T) {
		app := newApp(t, &helperOSS.MockBlobStore{})
		status, _ := do(t, app, multipartReq(t, "/api/tasks/nope/attachments", "a.pdf", []byte("x")))
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
