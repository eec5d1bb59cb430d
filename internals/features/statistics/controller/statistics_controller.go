package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/statistics/service"
	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/helpers/export"
)

type StatisticsController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewStatisticsController(svc *service.Service, log *logrus.Logger) *StatisticsController {
	return &StatisticsController{Svc: svc, Log: log}
}

// GET /api/statistics?region=&base=&source=&category=
func (ctl *StatisticsController) Get(c *fiber.Ctx) error {
	var f service.Filters
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	return helper.JsonOK(c, "ok", ctl.Svc.Generate(c.UserContext(), f))
}

// GET /api/statistics/report.csv
func (ctl *StatisticsController) ReportCSV(c *fiber.Ctx) error {
	var f service.Filters
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	rep := ctl.Svc.Generate(c.UserContext(), f)

	var buf bytes.Buffer
	buf.WriteString("HSE Analytics Report\n\n")
	if err := export.WriteCSV(&buf, service.ReportTables(rep)...); err != nil {
		ctl.Log.WithError(err).Error("[STATS] render csv gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat laporan")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="HSE_Analytics_Report_%s.csv"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// GET /api/statistics/report.xlsx
func (ctl *StatisticsController) ReportXLSX(c *fiber.Ctx) error {
	var f service.Filters
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	rep := ctl.Svc.Generate(c.UserContext(), f)

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, service.ReportTables(rep)...); err != nil {
		ctl.Log.WithError(err).Error("[STATS] render xlsx gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat laporan")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="HSE_Analytics_Report_%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}
