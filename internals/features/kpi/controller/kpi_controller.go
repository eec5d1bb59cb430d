package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/kpi/dto"
	"hsetrack_backend/internals/features/kpi/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/helpers/export"
)

type KPIController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewKPIController(svc *service.Service, log *logrus.Logger) *KPIController {
	return &KPIController{Svc: svc, Log: log}
}

func (ctl *KPIController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrYearNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Tahun KPI tidak ditemukan")
	case errors.Is(err, service.ErrYearExists):
		return helper.JsonError(c, fiber.StatusConflict, "Tahun KPI sudah ada")
	}
	ctl.Log.WithError(err).Error("[KPI] request gagal")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses KPI")
}

func yearParam(c *fiber.Ctx) (int, bool) {
	y, err := strconv.Atoi(c.Params("year"))
	if err != nil || y < 2000 || y > 2100 {
		return 0, false
	}
	return y, true
}

// GET /api/kpi/years
func (ctl *KPIController) Years(c *fiber.Ctx) error {
	years, err := ctl.Svc.Years(c.UserContext())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", years)
}

// GET /api/kpi/:year
func (ctl *KPIController) Get(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tahun tidak valid")
	}
	d, err := ctl.Svc.Year(c.UserContext(), year)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToYearResponse(d))
}

// GET /api/kpi/:year/export.csv
func (ctl *KPIController) ExportCSV(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tahun tidak valid")
	}
	d, err := ctl.Svc.Year(c.UserContext(), year)
	if err != nil {
		return ctl.fail(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, service.ReportTable(d)); err != nil {
		ctl.Log.WithError(err).Error("[KPI] render csv gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="HSE_KPI_%d.csv"`, year))
	return c.Send(buf.Bytes())
}

// POST /api/a/kpi/years {year}
func (ctl *KPIController) AddYear(c *fiber.Ctx) error {
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
	return helper.JsonCreated(c, "Tahun KPI ditambahkan", dto.ToYearResponse(d))
}

// PUT /api/a/kpi/:year
func (ctl *KPIController) Save(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tahun tidak valid")
	}
	var req dto.SaveYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	d, err := ctl.Svc.SaveYear(c.UserContext(), req.ToModel(year))
	if err != nil {
		return ctl.fail(c, err)
	}
	ctl.Log.WithField("year", year).Info("[KPI] year saved")
	return helper.JsonUpdated(c, "KPI disimpan", dto.ToYearResponse(d))
}

// DELETE /api/a/kpi/:year
func (ctl *KPIController) Delete(c *fiber.Ctx) error {
	year, ok := yearParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tahun tidak valid")
	}
	if err := ctl.Svc.DeleteYear(c.UserContext(), year); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Tahun KPI dihapus", fiber.Map{"year": year})
}
