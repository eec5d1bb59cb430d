package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/documents/controller"
)

func DocumentRoutes(r fiber.Router, ctl *controller.DocumentController) {
	g := r.Group("/documents")
	g.Get("/", ctl.List)
	g.Get("/types", ctl.Types)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/attachment", ctl.Attach)
}
