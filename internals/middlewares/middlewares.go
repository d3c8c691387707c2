package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMW "github.com/santymrk2/school-system-sub001/internals/middlewares/logger"
)

// SetupMiddlewares aplica la cadena base en orden
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMW.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
