// file: internals/features/admissions/solicitudes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/santymrk2/school-system-sub001/internals/constants"
	solicitudCtl "github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/controller"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
	authMiddleware "github.com/santymrk2/school-system-sub001/internals/middlewares/auth"
)

func SolicitudesAdminRoutes(api fiber.Router, db *gorm.DB, svc *service.SolicitudService) {
	ctl := solicitudCtl.NewSolicitudAdminController(db, svc, nil)

	base := api.Group("/solicitudes-admision",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorPersonal("gestionar solicitudes de admisión"),
			constants.AdmisionStaff,
		),
	)

	base.Post("", ctl.Create)
	base.Get("", ctl.List)
	base.Get("/:id", ctl.GetByID)

	base.Post("/:id/propuesta", ctl.EnviarPropuesta)
	base.Post("/:id/confirmacion", ctl.ConfirmarEntrevista)
	base.Post("/:id/entrevista", ctl.RegistrarEntrevista)
	base.Post("/:id/decision", ctl.Decidir)
	base.Post("/:id/rechazo", ctl.Rechazar)
}
