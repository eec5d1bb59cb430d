package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/indicators/controller"
)

func IndicatorRoutes(r fiber.Router, ctl *controller.IndicatorController) {
	g := r.Group("/ll-indicators")
	g.Get("/years", ctl.Years)
	g.Get("/:year", ctl.Get)
	g.Get("/:year/export.csv", ctl.ExportCSV)
}

func IndicatorAdminRoutes(r fiber.Router, ctl *controller.IndicatorController) {
	g := r.Group("/ll-indicators")
	g.Post("/years", ctl.AddYear)
	g.Put("/:year", ctl.Save)
	g.Post("/:year/:kind", ctl.Create)
	g.Patch("/:year/:kind/:id", ctl.Patch)
	g.Delete("/:year/:kind/:id", ctl.Delete)
}
