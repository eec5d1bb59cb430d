package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/statistics/controller"
)

func StatisticsRoutes(r fiber.Router, ctl *controller.StatisticsController) {
	g := r.Group("/statistics")
	g.Get("/", ctl.Get)
	g.Get("/report.csv", ctl.ReportCSV)
	g.Get("/report.xlsx", ctl.ReportXLSX)
}
