// file: internals/features/tasks/controller/task_controller.go
package controller

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/tasks/dto"
	"hsetrack_backend/internals/features/tasks/model"
	"hsetrack_backend/internals/features/tasks/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/helpers/export"
	helperOSS "hsetrack_backend/internals/helpers/oss"
)

type TaskController struct {
	Svc  *service.Service
	Blob helperOSS.BlobStore // nil = upload tidak tersedia
	Log  *logrus.Logger
}

func NewTaskController(svc *service.Service, blob helperOSS.BlobStore, log *logrus.Logger) *TaskController {
	return &TaskController{Svc: svc, Blob: blob, Log: log}
}

func (ctl *TaskController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrTaskNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Task tidak ditemukan")
	}
	ctl.Log.WithError(err).Error("[TASKS] request gagal")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses task")
}

var errBadQuery = errors.New("bad query")

// filtered: query region/base/year/status (+ program_id) dipakai list dan export.
func (ctl *TaskController) filtered(c *fiber.Ctx) ([]model.Task, error) {
	var f model.Filters
	if err := c.QueryParser(&f); err != nil {
		return nil, errBadQuery
	}
	if pid := c.Query("program_id"); pid != "" {
		tasks, err := ctl.Svc.ByProgram(c.UserContext(), pid)
		if err != nil {
			return nil, err
		}
		return service.Filter(tasks, f), nil
	}
	return ctl.Svc.List(c.UserContext(), f)
}

// GET /api/tasks?region=&base=&year=&status=&program_id=&page=&per_page=
func (ctl *TaskController) List(c *fiber.Ctx) error {
	tasks, err := ctl.filtered(c)
	if errors.Is(err, errBadQuery) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err != nil {
		return ctl.fail(c, err)
	}

	paging := helper.ResolvePaging(c, 50, 500)
	page, pg := helper.PageSlice(dto.ToTaskResponses(tasks), paging)
	return helper.JsonList(c, "ok", page, &pg)
}

// GET /api/tasks/export.csv (filter sama dengan list, tanpa paging)
func (ctl *TaskController) ExportCSV(c *fiber.Ctx) error {
	return ctl.export(c, "csv")
}

// GET /api/tasks/export.xlsx
func (ctl *TaskController) ExportXLSX(c *fiber.Ctx) error {
	return ctl.export(c, "xlsx")
}

func (ctl *TaskController) export(c *fiber.Ctx, ext string) error {
	tasks, err := ctl.filtered(c)
	if errors.Is(err, errBadQuery) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err != nil {
		return ctl.fail(c, err)
	}

	var (
		buf  bytes.Buffer
		mime = "text/csv; charset=utf-8"
	)
	table := export.TasksTable(tasks)
	if ext == "xlsx" {
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, table)
	} else {
		err = export.WriteCSV(&buf, table)
	}
	if err != nil {
		ctl.Log.WithError(err).Errorf("[TASKS] render %s gagal", ext)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}

	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="HSE_Tasks_%s.%s"`, time.Now().Format("2006-01-02"), ext))
	return c.Send(buf.Bytes())
}

func (ctl *TaskController) GetByID(c *fiber.Ctx) error {
	t, err := ctl.Svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToTaskResponse(t))
}

func (ctl *TaskController) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	t, err := ctl.Svc.Create(c.UserContext(), req.ToModel())
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.Log.WithField("task_id", t.ID).Info("[TASKS] created")
	return helper.JsonCreated(c, "Task dibuat", dto.ToTaskResponse(t))
}

func (ctl *TaskController) Patch(c *fiber.Ctx) error {
	var req dto.PatchTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	t, err := ctl.Svc.Update(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Task diperbarui", dto.ToTaskResponse(t))
}

func (ctl *TaskController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Task dihapus", fiber.Map{"id": id})
}

// POST /api/tasks/:id/attachments (multipart: file)
func (ctl *TaskController) UploadAttachment(c *fiber.Ctx) error {
	if ctl.Blob == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}
	id := c.Params("id")
	if _, err := ctl.Svc.Get(c.UserContext(), id); err != nil {
		return ctl.fail(c, err)
	}
	fh, err := helperOSS.GetFile(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan")
	}

	stored, err := ctl.Blob.Upload(c.UserContext(), "tasks/"+id, fh)
	if err != nil {
		ctl.Log.WithError(err).Error("[TASKS] upload attachment gagal")
		return helper.JsonError(c, fiber.StatusBadGateway, "Upload file gagal")
	}

	att := model.Attachment{
		ID:          uuid.NewString(),
		Filename:    stored.Filename,
		Key:         stored.Key,
		URL:         stored.URL,
		ContentType: stored.ContentType,
		Size:        stored.Size,
		UploadedAt:  time.Now(),
	}
	t, err := ctl.Svc.AddAttachment(c.UserContext(), id, att)
	if err != nil {
		// rollback objek yang sudah terupload
		_ = ctl.Blob.Delete(c.UserContext(), stored.Key)
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Attachment diunggah", dto.ToTaskResponse(t))
}
