package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/auditlogs/controller"
)

func AuditLogAdminRoutes(r fiber.Router, ctl *controller.AuditLogController) {
	r.Get("/audit-logs", ctl.List)
}
