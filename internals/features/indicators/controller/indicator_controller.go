package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/indicators/dto"
	"hsetrack_backend/internals/features/indicators/model"
	"hsetrack_backend/internals/features/indicators/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/helpers/export"
)

type IndicatorController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewIndicatorController(svc *service.Service, log *logrus.Logger) *IndicatorController {
	return &IndicatorController{Svc: svc, Log: log}
}

func (ctl *IndicatorController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrYearNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun indikator tidak ditemukan")
	case errors.Is(err, service.ErrIndicatorNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Indikator tidak ditemukan")
	case errors.Is(err, service.ErrYearExists):
		return helper.JsonError(c, fiber.StatusConflict, "Tahun indikator sudah ada")
	}
	ctl.Log.WithError(err).Error("[INDICATORS] request gagal")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses indikator")
}

var errBadParam = errors.New("bad param")

// target: :year, lalu :kind & :id kalau ada di route.
type target struct {
	year int
	kind model.Kind
	id   int
}

func parseTarget(c *fiber.Ctx) (target, error) {
	var t target
	y, err := strconv.Atoi(c.Params("year"))
	if err != nil || y < 2000 || y > 2100 {
		return t, errBadParam
	}
	t.year = y
	if k := c.Params("kind"); k != "" {
		t.kind = model.Kind(k)
		if !t.kind.Valid() {
			return t, errBadParam
		}
	}
	if raw := c.Params("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return t, errBadParam
		}
		t.id = id
	}
	return t, nil
}

func badParam(c *fiber.Ctx) error {
	return helper.JsonError(c, fiber.StatusBadRequest, "Tahun, jenis (lagging/leading), atau id tidak valid")
}

// GET /api/ll-indicators/years
func (ctl *IndicatorController) Years(c *fiber.Ctx) error {
	years, err := ctl.Svc.Years(c.UserContext())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", years)
}

// GET /api/ll-indicators/:year
func (ctl *IndicatorController) Get(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	d, err := ctl.Svc.Year(c.UserContext(), t.year)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToYearResponse(d))
}

// GET /api/ll-indicators/:year/export.csv
func (ctl *IndicatorController) ExportCSV(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	d, err := ctl.Svc.Year(c.UserContext(), t.year)
	if err != nil {
		return ctl.fail(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, service.ReportTable(d)); err != nil {
		ctl.Log.WithError(err).Error("[INDICATORS] render csv gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="HSE_LL_Indicator_%d.csv"`, t.year))
	return c.Send(buf.Bytes())
}

// POST /api/a/ll-indicators/years {year}
func (ctl *IndicatorController) AddYear(c *fiber.Ctx) error {
	var req dto.AddYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	d, err := ctl.Svc.AddYear(c.UserContext(), req.Year)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Tahun indikator ditambahkan", dto.ToYearResponse(d))
}

// PUT /api/a/ll-indicators/:year
func (ctl *IndicatorController) Save(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	var req dto.SaveYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	d, err := ctl.Svc.SaveYear(c.UserContext(), req.ToModel(t.year))
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Indikator disimpan", dto.ToYearResponse(d))
}

// POST /api/a/ll-indicators/:year/:kind
func (ctl *IndicatorController) Create(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	var req dto.IndicatorInput
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	it, err := ctl.Svc.AddIndicator(c.UserContext(), t.year, t.kind, req.ToModel())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Indikator ditambahkan", dto.ToIndicatorResponse(it))
}

// PATCH /api/a/ll-indicators/:year/:kind/:id
func (ctl *IndicatorController) Patch(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	var req dto.PatchIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	it, err := ctl.Svc.UpdateIndicator(c.UserContext(), t.year, t.kind, t.id, req.ToPatch())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Indikator diperbarui", dto.ToIndicatorResponse(it))
}

// DELETE /api/a/ll-indicators/:year/:kind/:id
func (ctl *IndicatorController) Delete(c *fiber.Ctx) error {
	t, err := parseTarget(c)
	if err != nil {
		return badParam(c)
	}
	if err := ctl.Svc.DeleteIndicator(c.UserContext(), t.year, t.kind, t.id); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Indikator dihapus", fiber.Map{"year": t.year, "kind": t.kind, "id": t.id})
}
