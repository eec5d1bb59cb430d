package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/documents/dto"
	"hsetrack_backend/internals/features/documents/model"
	"hsetrack_backend/internals/features/documents/service"
	helper "hsetrack_backend/internals/helpers"
	helperOSS "hsetrack_backend/internals/helpers/oss"
)

type DocumentController struct {
	Svc  *service.Service
	Blob helperOSS.BlobStore
	Log  *logrus.Logger
}

func NewDocumentController(svc *service.Service, blob helperOSS.BlobStore, log *logrus.Logger) *DocumentController {
	return &DocumentController{Svc: svc, Blob: blob, Log: log}
}

func (ctl *DocumentController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrDocumentNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Dokumen tidak ditemukan")
	}
	ctl.Log.WithError(err).Error("[DOCS] request gagal")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses dokumen")
}

// GET /api/documents?q=
func (ctl *DocumentController) List(c *fiber.Ctx) error {
	docs, err := ctl.Svc.List(c.UserContext(), c.Query("q", c.Query("search")))
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.ToDocumentResponses(docs), nil)
}

// GET /api/documents/types
func (ctl *DocumentController) Types(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", dto.DocTypeOptions())
}

func (ctl *DocumentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	d, err := ctl.Svc.Create(c.UserContext(), req.ToModel())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Dokumen dibuat", dto.ToDocumentResponse(d))
}

func (ctl *DocumentController) Patch(c *fiber.Ctx) error {
	var req dto.PatchDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	d, err := ctl.Svc.Update(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Dokumen diperbarui", dto.ToDocumentResponse(d))
}

func (ctl *DocumentController) Delete(c *fiber.Ctx) error {
	d, err := ctl.Svc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.dropObject(c, d.Attachment)
	return helper.JsonDeleted(c, "Dokumen dihapus", fiber.Map{"id": d.ID})
}

// POST /api/documents/:id/attachment (multipart: file)
func (ctl *DocumentController) Attach(c *fiber.Ctx) error {
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

	stored, err := ctl.Blob.Upload(c.UserContext(), "documents/"+id, fh)
	if err != nil {
		ctl.Log.WithError(err).Error("[DOCS] upload attachment gagal")
		return helper.JsonError(c, fiber.StatusBadGateway, "Upload file gagal")
	}

	att := model.Attachment{
		ID:          uuid.NewString(),
		Filename:    stored.Filename,
		Key:         stored.Key,
		URL:         stored.URL,
		ContentType: stored.ContentType,
		UploadedAt:  time.Now(),
	}
	d, prev, err := ctl.Svc.Attach(c.UserContext(), id, att, stored.Size)
	if err != nil {
		_ = ctl.Blob.Delete(c.UserContext(), stored.Key)
		return ctl.fail(c, err)
	}
	ctl.dropObject(c, prev)
	return helper.JsonCreated(c, "Attachment diunggah", dto.ToDocumentResponse(d))
}

// dropObject: gagal hapus objek lama cukup di-log.
func (ctl *DocumentController) dropObject(c *fiber.Ctx, a *model.Attachment) {
	if a == nil || a.Key == "" || ctl.Blob == nil {
		return
	}
	if err := ctl.Blob.Delete(c.UserContext(), a.Key); err != nil {
		ctl.Log.WithError(err).WithField("key", a.Key).Warn("[DOCS] hapus objek lama gagal")
	}
}
