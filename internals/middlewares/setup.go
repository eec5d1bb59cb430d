package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/configs"
	reqLogger "hsetrack_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting: recover paling luar).
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *logrus.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestContext(15 * time.Second))
	app.Use(reqLogger.LoggerMiddleware(log.Writer()))
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())
	app.Use("/api", GlobalRateLimiter(cfg.RateLimitMax))
}
