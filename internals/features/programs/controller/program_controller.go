package controller

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/programs/dto"
	"hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/programs/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/helpers/export"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ProgramController struct {
	Registry *service.Registry
	Engine   *service.Engine
	Loader   *service.Loader
	Log      *logrus.Logger
}

func NewProgramController(reg *service.Registry, eng *service.Engine, loader *service.Loader, log *logrus.Logger) *ProgramController {
	return &ProgramController{Registry: reg, Engine: eng, Loader: loader, Log: log}
}

func (ctl *ProgramController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrMalformedID),
		errors.Is(err, model.ErrInvalidPartition),
		errors.Is(err, model.ErrInvalidMonth):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProgramNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	}
	ctl.Log.WithError(err).Error("[PROGRAMS] request gagal")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

func (ctl *ProgramController) filtered(c *fiber.Ctx) ([]model.UnifiedProgram, error) {
	var q service.Criteria
	if err := c.QueryParser(&q); err != nil {
		return nil, err
	}
	return service.Filter(ctl.Registry.LoadAll(c.UserContext()), q), nil
}

// GET /api/programs?region=&base=&source=&category=&status=&search=
func (ctl *ProgramController) List(c *fiber.Ctx) error {
	programs, err := ctl.filtered(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	return helper.JsonOK(c, "ok", dto.UnifiedListResponse{
		Programs: programs,
		Stats:    service.ComputeStats(programs),
	})
}

// GET /api/programs/stats
func (ctl *ProgramController) Stats(c *fiber.Ctx) error {
	programs, err := ctl.filtered(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	return helper.JsonOK(c, "ok", service.ComputeStats(programs))
}

// GET /api/programs/export.csv
func (ctl *ProgramController) ExportCSV(c *fiber.Ctx) error {
	programs, err := ctl.filtered(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	return ctl.sendCSV(c, "HSE_Programs", export.UnifiedTable(programs))
}

// GET /api/programs/export.xlsx
func (ctl *ProgramController) ExportXLSX(c *fiber.Ctx) error {
	programs, err := ctl.filtered(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.UnifiedTable(programs)); err != nil {
		ctl.Log.WithError(err).Error("[PROGRAMS] render xlsx gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, disposition("HSE_Programs", "xlsx"))
	return c.Send(buf.Bytes())
}

// PATCH /api/a/programs/:id/progress
func (ctl *ProgramController) UpdateProgress(c *fiber.Ctx) error {
	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	res, err := ctl.Engine.Apply(c.UserContext(), c.Params("id"), req.ToPatch())
	if err != nil {
		return ctl.fail(c, err)
	}
	msg := "Progress tersimpan"
	if !res.RemoteSynced {
		msg = "Progress tersimpan lokal, sinkronisasi remote tertunda"
	}
	return helper.JsonUpdated(c, msg, res)
}

/* ===============================
   Partisi mentah (catalog)
=================================*/

func partitionParam(c *fiber.Ctx) (model.Partition, error) {
	return model.ParsePartition(c.Params("source"), c.Params("dim"), c.Params("base"))
}

// GET /api/partitions/:source/:dim/:base
func (ctl *ProgramController) GetPartition(c *fiber.Ctx) error {
	part, err := partitionParam(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	view, err := ctl.Engine.ListPartition(c.UserContext(), part)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", view)
}

// GET /api/partitions/:source/:dim/:base/export.csv
func (ctl *ProgramController) ExportPartitionCSV(c *fiber.Ctx) error {
	part, err := partitionParam(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	coll, err := ctl.Loader.Load(c.UserContext(), part)
	if err != nil {
		return ctl.fail(c, err)
	}
	return ctl.sendCSV(c, "HSE_"+export.PartitionTable(part, coll).Sheet, export.PartitionTable(part, coll))
}

// POST /api/a/partitions/:source/:dim/:base/programs
func (ctl *ProgramController) CreateProgram(c *fiber.Ctx) error {
	part, err := partitionParam(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	prog, err := ctl.Engine.CreateProgram(c.UserContext(), part, req.ToInput())
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Program dibuat", service.ProgramView{
		Program:   prog,
		UnifiedID: part.UnifiedID(prog.ID),
		Summary:   service.Aggregate(prog),
	})
}

// DELETE /api/a/partitions/:source/:dim/:base/programs/:id
func (ctl *ProgramController) DeleteProgram(c *fiber.Ctx) error {
	part, err := partitionParam(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID program tidak valid")
	}
	if err := ctl.Engine.DeleteProgram(c.UserContext(), part, id); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Program dihapus", fiber.Map{"unified_id": part.UnifiedID(id)})
}

func (ctl *ProgramController) sendCSV(c *fiber.Ctx, name string, t export.Table) error {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, t); err != nil {
		ctl.Log.WithError(err).Error("[PROGRAMS] render csv gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}
	c.Set(fiber.HeaderContentType, mimeCSV)
	c.Set(fiber.HeaderContentDisposition, disposition(name, "csv"))
	return c.Send(buf.Bytes())
}

func disposition(name, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s_%s.%s"`, name, time.Now().Format("2006-01-02"), ext)
}
