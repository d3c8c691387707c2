// file: internals/features/users/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userCtl "github.com/santymrk2/school-system-sub001/internals/features/users/controller"
	"github.com/santymrk2/school-system-sub001/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := userCtl.NewAuthController(db, nil)

	app.Post("/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
}
