package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/reminders/service"
	helper "hsetrack_backend/internals/helpers"
)

type ReminderController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewReminderController(svc *service.Service, log *logrus.Logger) *ReminderController {
	return &ReminderController{Svc: svc, Log: log}
}

type runRequest struct {
	TestMode  bool   `json:"test_mode"`
	TestEmail string `json:"test_email"`
}

// POST /api/a/reminders/run  body opsional {"test_mode":true,"test_email":"..."}
func (ctl *ReminderController) Run(c *fiber.Ctx) error {
	var req runRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}

	if req.TestMode {
		email := strings.TrimSpace(req.TestEmail)
		if !strings.Contains(email, "@") {
			return helper.JsonValidationError(c, map[string][]string{"test_email": {"email"}})
		}
		sum, err := ctl.Svc.SendTest(c.UserContext(), email)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "Test reminder diproses", sum)
	}

	sum, err := ctl.Svc.Run(c.UserContext())
	if errors.Is(err, service.ErrAlreadyRunning) {
		return helper.JsonError(c, fiber.StatusConflict, "Reminder sedang berjalan")
	}
	if err != nil {
		ctl.Log.WithError(err).Error("[REMINDER] run manual gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menjalankan reminder")
	}
	return helper.JsonOK(c, "Reminder diproses", sum)
}

// GET /api/a/reminders/pending
func (ctl *ReminderController) Pending(c *fiber.Ctx) error {
	alerts, err := ctl.Svc.Pending(c.UserContext())
	if err != nil {
		ctl.Log.WithError(err).Error("[REMINDER] pending gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data reminder")
	}
	return helper.JsonList(c, "ok", alerts, nil)
}
