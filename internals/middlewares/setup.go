package middlewares

import (
	"github.com/gofiber/fiber/v2"

	logger "talenthub_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain. Order matters:
// recovery first so panics in anything below still produce a 500 envelope.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
