// file: internals/features/admissions/solicitudes/route/portal_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	solicitudCtl "github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/controller"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
	"github.com/santymrk2/school-system-sub001/internals/middlewares"
)

// Rutas públicas del portal de familias: solo token, sin JWT.
func PortalRoutes(app *fiber.App, svc *service.SolicitudService) {
	ctl := solicitudCtl.NewPortalController(svc, nil)

	portal := app.Group("/portal/admision", middlewares.PortalRateLimiter())
	portal.Get("/:token", ctl.Vista)
	portal.Post("/:token/seleccion", ctl.EnviarSeleccion)
}
