package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hsetrack_backend/internals/configs"
	database "hsetrack_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, cfg *configs.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("HSE Program Tracker backend is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		localStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(database.LocalDB); err != nil {
			localStatus = "Local store error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		// remote mati tidak membuat server DOWN; update tetap commit lokal
		remoteStatus := "Disabled"
		if cfg.RemoteEnabled() {
			remoteStatus = "Connected"
			if err := database.Ping(database.DB); err != nil {
				remoteStatus = "Remote connection error"
				if serverStatus == "OK" {
					serverStatus = "DEGRADED"
				}
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"local_store":    localStatus,
			"remote":         remoteStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    cfg.AppEnv,
		})
	})
}
