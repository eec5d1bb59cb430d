package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/reminders/controller"
)

func ReminderAdminRoutes(r fiber.Router, ctl *controller.ReminderController) {
	g := r.Group("/reminders")
	g.Post("/run", ctl.Run)
	g.Get("/pending", ctl.Pending)
}
