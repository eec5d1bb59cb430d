package route

import (
	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/features/programs/controller"
)

// ProgramRoutes: baca-saja (tampilan gabungan, statistik ringkas, export, partisi mentah).
func ProgramRoutes(r fiber.Router, ctl *controller.ProgramController) {
	g := r.Group("/programs")
	g.Get("/", ctl.List)
	g.Get("/stats", ctl.Stats)
	g.Get("/export.csv", ctl.ExportCSV)
	g.Get("/export.xlsx", ctl.ExportXLSX)

	p := r.Group("/partitions/:source/:dim/:base")
	p.Get("/", ctl.GetPartition)
	p.Get("/export.csv", ctl.ExportPartitionCSV)
}

// ProgramAdminRoutes: mutasi lewat update engine & catalog.
func ProgramAdminRoutes(r fiber.Router, ctl *controller.ProgramController) {
	r.Patch("/programs/:id/progress", ctl.UpdateProgress)

	p := r.Group("/partitions/:source/:dim/:base/programs")
	p.Post("/", ctl.CreateProgram)
	p.Delete("/:id", ctl.DeleteProgram)
}
