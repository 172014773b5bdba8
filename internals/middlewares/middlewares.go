package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"tuition_backend/internals/configs"
	"tuition_backend/internals/helpers/dbtime"
	"tuition_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global sesuai urutan:
// request-id → recover → access log → cors → rate limit → clock.
// Request-id paling luar supaya panic yang di-recover tetap tercatat statusnya.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, clock dbtime.Clock) {
	app.Use(RequestID(cfg.RequestTimeout))
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(cfg.Timezone))
	app.Use(CorsMiddleware(cfg.CORSAllowOrigins))
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
	app.Use(dbtime.UseClock(clock))
}
