package middlewares

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	auditModel "hsetrack_backend/internals/features/auditlogs/model"
)

type AuditRecorder interface {
	Record(ctx context.Context, e auditModel.Entry) (auditModel.Entry, error)
}

// urutan param yang membentuk record_id, mis. "otp/indonesia/duri/5" atau "2026/leading/1"
var auditIDParams = []string{"source", "dim", "base", "year", "kind", "id"}

// AuditTrail mencatat request mutasi (POST/PUT/PATCH/DELETE) yang sukses.
// triggerPaths: route POST yang menjalankan job, dicatat sebagai EXECUTE.
func AuditTrail(rec AuditRecorder, log *logrus.Logger, triggerPaths ...string) fiber.Handler {
	triggers := make(map[string]bool, len(triggerPaths))
	for _, p := range triggerPaths {
		triggers[p] = true
	}

	return func(c *fiber.Ctx) error {
		method := c.Method()
		var action auditModel.Action
		switch method {
		case fiber.MethodPost:
			action = auditModel.ActionInsert
		case fiber.MethodPut, fiber.MethodPatch:
			action = auditModel.ActionUpdate
		case fiber.MethodDelete:
			action = auditModel.ActionDelete
		default:
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusBadRequest {
			return nil
		}

		routePath := c.Route().Path
		if triggers[routePath] {
			action = auditModel.ActionExecute
		}

		ids := make([]string, 0, 3)
		for _, name := range auditIDParams {
			if v := c.Params(name); v != "" {
				ids = append(ids, v)
			}
		}

		entry := auditModel.Entry{
			Action:   action,
			Resource: auditResource(c.Path()),
			RecordID: strings.Join(ids, "/"),
			Method:   method,
			Path:     c.Path(),
			Status:   status,
			Actor:    auditActor(c),
		}
		if id, ok := c.Locals("reqid").(string); ok {
			entry.RequestID = id
		}
		if _, err := rec.Record(c.UserContext(), entry); err != nil {
			log.WithError(err).Warn("[AUDIT] gagal menyimpan jejak audit")
		}
		return nil
	}
}

// auditResource: segmen pertama setelah /api atau /api/a.
func auditResource(path string) string {
	p := strings.TrimPrefix(path, "/api")
	if p == "/a" || strings.HasPrefix(p, "/a/") {
		p = strings.TrimPrefix(p, "/a")
	}
	p = strings.Trim(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

func auditActor(c *fiber.Ctx) string {
	if email, ok := c.Locals("user_email").(string); ok && email != "" {
		return email
	}
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return id
	}
	return "anonymous"
}
