package controller

import (
	"bytes"
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
	"hsetrack_backend/internals/features/documents/service"
	helperOSS "hsetrack_backend/internals/helpers/oss"
	"hsetrack_backend/internals/logger"
)

type envelope struct {
	Success   bool                `json:"success"`
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

	ctl := NewDocumentController(service.NewService(store, broadcast.NewHub(), logger.Discard()), blob, logger.Discard())
	app := fiber.New()
	g := app.Group("/api/documents")
	g.Get("/", ctl.List)
	g.Get("/types", ctl.Types)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/attachment", ctl.Attach)
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

func TestDocumentCRUD(t *testing.T) {
	app := newApp(t, nil)

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/documents?q=form", nil))
	require.Equal(t, fiber.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Form", list[0]["type_label"])

	status, env = do(t, app, jsonReq(http.MethodPost, "/api/documents", `{"name":"Noise Survey","type":"Report","wpts_id":"WPTS-DOC-010"}`))
	require.Equal(t, fiber.StatusCreated, status)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := created["id"].(string)
	assert.Equal(t, "report", created["type"])

	status, env = do(t, app, jsonReq(http.MethodPost, "/api/documents", `{"name":"X","type":"memo"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "type")

	status, env = do(t, app, jsonReq(http.MethodPatch, "/api/documents/"+id, `{"type":"form"}`))
	require.Equal(t, fiber.StatusOK, status)
	var patched map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, "Noise Survey", patched["name"])
	assert.Equal(t, "form", patched["type"])

	status, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil))
	assert.Equal(t, fiber.StatusOK, status)
	status, env = do(t, app, httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestAttachReplacesPreviousObject(t *testing.T) {
	blob := &helperOSS.MockBlobStore{}
	app := newApp(t, blob)

	upload := func(name string) (int, envelope) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = fw.Write(bytes.Repeat([]byte("a"), 3000))
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/documents/3/attachment", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		return do(t, app, req)
	}

	status, env := upload("template-v1.docx")
	require.Equal(t, fiber.StatusCreated, status)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "3 KB", doc["size"])
	first := doc["attachment"].(map[string]any)["key"].(string)
	assert.Empty(t, blob.Deleted)

	status, _ = upload("template-v2.docx")
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, []string{first}, blob.Deleted)
}
