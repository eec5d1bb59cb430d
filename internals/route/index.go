// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/configs"
	auditController "hsetrack_backend/internals/features/auditlogs/controller"
	auditRoute "hsetrack_backend/internals/features/auditlogs/route"
	auditService "hsetrack_backend/internals/features/auditlogs/service"
	calendarController "hsetrack_backend/internals/features/calendar/controller"
	calendarRoute "hsetrack_backend/internals/features/calendar/route"
	calendarService "hsetrack_backend/internals/features/calendar/service"
	documentController "hsetrack_backend/internals/features/documents/controller"
	documentRoute "hsetrack_backend/internals/features/documents/route"
	documentService "hsetrack_backend/internals/features/documents/service"
	indicatorController "hsetrack_backend/internals/features/indicators/controller"
	indicatorRoute "hsetrack_backend/internals/features/indicators/route"
	indicatorService "hsetrack_backend/internals/features/indicators/service"
	kpiController "hsetrack_backend/internals/features/kpi/controller"
	kpiRoute "hsetrack_backend/internals/features/kpi/route"
	kpiService "hsetrack_backend/internals/features/kpi/service"
	programController "hsetrack_backend/internals/features/programs/controller"
	programRoute "hsetrack_backend/internals/features/programs/route"
	programService "hsetrack_backend/internals/features/programs/service"
	reminderController "hsetrack_backend/internals/features/reminders/controller"
	reminderRoute "hsetrack_backend/internals/features/reminders/route"
	reminderService "hsetrack_backend/internals/features/reminders/service"
	statisticsController "hsetrack_backend/internals/features/statistics/controller"
	statisticsRoute "hsetrack_backend/internals/features/statistics/route"
	statisticsService "hsetrack_backend/internals/features/statistics/service"
	taskController "hsetrack_backend/internals/features/tasks/controller"
	taskRoute "hsetrack_backend/internals/features/tasks/route"
	taskService "hsetrack_backend/internals/features/tasks/service"
	helperOSS "hsetrack_backend/internals/helpers/oss"
	"hsetrack_backend/internals/middlewares"
	"hsetrack_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps: semua service yang sudah dirakit di main.
type Deps struct {
	Config *configs.Config
	Log    *logrus.Logger

	Loader   *programService.Loader
	Registry *programService.Registry
	Engine   *programService.Engine

	Tasks      *taskService.Service
	Calendar   *calendarService.Service
	Statistics *statisticsService.Service
	Documents  *documentService.Service
	Reminders  *reminderService.Service
	KPI        *kpiService.Service
	Indicators *indicatorService.Service

	// Audit nil = jejak audit mutasi tidak dicatat
	Audit *auditService.Service

	// Blob nil = upload attachment dimatikan (503)
	Blob helperOSS.BlobStore
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := d.Log

	BaseRoutes(app, d.Config)

	programs := programController.NewProgramController(d.Registry, d.Engine, d.Loader, log)
	tasks := taskController.NewTaskController(d.Tasks, d.Blob, log)
	calendar := calendarController.NewCalendarController(d.Calendar, log)
	statistics := statisticsController.NewStatisticsController(d.Statistics, log)
	documents := documentController.NewDocumentController(d.Documents, d.Blob, log)
	reminders := reminderController.NewReminderController(d.Reminders, log)
	kpis := kpiController.NewKPIController(d.KPI, log)
	indicators := indicatorController.NewIndicatorController(d.Indicators, log)

	if d.Audit != nil {
		app.Use("/api", middlewares.AuditTrail(d.Audit, log, "/api/a/calendar/rebuild", "/api/a/reminders/run"))
	}

	// ===================== PUBLIC =====================
	log.Info("[ROUTES] Setting up PUBLIC group /api ...")
	api := app.Group("/api")
	programRoute.ProgramRoutes(api, programs)
	statisticsRoute.StatisticsRoutes(api, statistics)
	calendarRoute.CalendarRoutes(api, calendar)
	taskRoute.TaskRoutes(api, tasks)
	documentRoute.DocumentRoutes(api, documents)
	kpiRoute.KPIRoutes(api, kpis)
	indicatorRoute.IndicatorRoutes(api, indicators)

	// ===================== ADMIN =====================
	log.Info("[ROUTES] Setting up ADMIN group /api/a (Auth + RoleCheck) ...")
	admin := app.Group("/api/a", auth.IsAdmin(d.Config.JWTSecret, log)...)
	programRoute.ProgramAdminRoutes(admin, programs)

	// endpoint pemicu (rebuild/kirim email) dibatasi lebih ketat
	admin.Use("/calendar/rebuild", middlewares.TriggerRateLimiter())
	admin.Use("/reminders/run", middlewares.TriggerRateLimiter())
	calendarRoute.CalendarAdminRoutes(admin, calendar)
	reminderRoute.ReminderAdminRoutes(admin, reminders)
	kpiRoute.KPIAdminRoutes(admin, kpis)
	indicatorRoute.IndicatorAdminRoutes(admin, indicators)
	if d.Audit != nil {
		auditRoute.AuditLogAdminRoutes(admin, auditController.NewAuditLogController(d.Audit, log))
	}

	log.Info("[ROUTES] All routes registered")
}
