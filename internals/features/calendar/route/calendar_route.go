package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/calendar/controller"
)

func CalendarRoutes(r fiber.Router, ctl *controller.CalendarController) {
	r.Get("/calendar/events", ctl.List)
}

// CalendarAdminRoutes: mount di group /api/a
func CalendarAdminRoutes(admin fiber.Router, ctl *controller.CalendarController) {
	admin.Post("/calendar/rebuild", ctl.Rebuild)
}
