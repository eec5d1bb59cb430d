package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/auditlogs/model"
	"hsetrack_backend/internals/features/auditlogs/service"
	helper "hsetrack_backend/internals/helpers"
)

type AuditLogController struct {
	Svc *service.Service
	Log *logrus.Logger
}

func NewAuditLogController(svc *service.Service, log *logrus.Logger) *AuditLogController {
	return &AuditLogController{Svc: svc, Log: log}
}

type AuditLogResponse struct {
	model.Entry
	ActionLabel string `json:"action_label"`
}

// GET /api/a/audit-logs?limit=&resource=
func (ctl *AuditLogController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultLimit)
	if limit <= 0 {
		limit = service.DefaultLimit
	}
	if limit > service.MaxEntries {
		limit = service.MaxEntries
	}
	resource := c.Query("resource")

	// filter resource dilakukan sebelum limit
	fetch := limit
	if resource != "" {
		fetch = service.MaxEntries
	}
	entries, err := ctl.Svc.List(c.UserContext(), fetch)
	if err != nil {
		ctl.Log.WithError(err).Error("[AUDIT] list gagal")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat audit log")
	}

	out := make([]AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		if resource != "" && e.Resource != resource {
			continue
		}
		out = append(out, AuditLogResponse{Entry: e, ActionLabel: e.Action.Label()})
		if len(out) == limit {
			break
		}
	}
	return helper.JsonList(c, "ok", out, nil)
}
