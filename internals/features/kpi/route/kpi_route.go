package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/kpi/controller"
)

func KPIRoutes(r fiber.Router, ctl *controller.KPIController) {
	g := r.Group("/kpi")
	g.Get("/years", ctl.Years)
	g.Get("/:year", ctl.Get)
	g.Get("/:year/export.csv", ctl.ExportCSV)
}

func KPIAdminRoutes(r fiber.Router, ctl *controller.KPIController) {
	g := r.Group("/kpi")
	g.Post("/years", ctl.AddYear)
	g.Put("/:year", ctl.Save)
	g.Delete("/:year", ctl.Delete)
}
