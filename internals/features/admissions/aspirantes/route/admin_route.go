// file: internals/features/admissions/aspirantes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/santymrk2/school-system-sub001/internals/constants"
	aspiranteCtl "github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/controller"
	authMiddleware "github.com/santymrk2/school-system-sub001/internals/middlewares/auth"
)

func AspirantesAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := aspiranteCtl.NewAspiranteController(db, nil)

	base := api.Group("/aspirantes",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorPersonal("gestionar aspirantes"),
			constants.AdmisionStaff,
		),
	)

	base.Post("", ctl.Create)
	base.Get("", ctl.List)
	base.Get("/:id", ctl.GetByID)
	base.Patch("/:id", ctl.Patch)
	base.Delete("/:id", ctl.Delete)
}
