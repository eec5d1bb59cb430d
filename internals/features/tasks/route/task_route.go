package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/tasks/controller"
)

// TaskRoutes: CRUD task + upload attachment.
// Contoh mount:
//
//	api := app.Group("/api")
//	route.TaskRoutes(api, ctl)
func TaskRoutes(r fiber.Router, ctl *controller.TaskController) {
	g := r.Group("/tasks")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	// export didaftarkan sebelum /:id
	g.Get("/export.csv", ctl.ExportCSV)
	g.Get("/export.xlsx", ctl.ExportXLSX)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/attachments", ctl.UploadAttachment)
}
