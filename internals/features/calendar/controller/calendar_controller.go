package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/calendar/service"
	helper "hsetrack_backend/internals/helpers"
)

type CalendarController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewCalendarController(svc *service.Service, log *logrus.Logger) *CalendarController {
	return &CalendarController{Svc: svc, Log: log}
}

type listQuery struct {
	Year   int    `query:"year"`
	Month  int    `query:"month"`
	Source string `query:"source"`
}

// GET /api/calendar/events?year=2026&month=6&source=task
func (ctl *CalendarController) List(c *fiber.Ctx) error {
	var q listQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if q.Month < 0 || q.Month > 12 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month harus 1..12")
	}

	events, err := ctl.Svc.List(c.UserContext(), q.Year, q.Month)
	if err != nil {
		ctl.Log.WithError(err).Error("[CALENDAR] list gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kalender")
	}
	if q.Source != "" && q.Source != "all" {
		filtered := events[:0]
		for _, e := range events {
			if e.Source == q.Source {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	return helper.JsonList(c, "ok", events, nil)
}

// POST /api/a/calendar/rebuild
func (ctl *CalendarController) Rebuild(c *fiber.Ctx) error {
	n, err := ctl.Svc.Rebuild(c.UserContext())
	if err != nil {
		ctl.Log.WithError(err).Error("[CALENDAR] rebuild gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membangun ulang kalender")
	}
	return helper.JsonOK(c, "Kalender dibangun ulang", fiber.Map{"events": n})
}
