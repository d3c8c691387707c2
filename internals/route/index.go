// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aspiranteRoute "github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/route"
	solicitudRoute "github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/route"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
	userRoute "github.com/santymrk2/school-system-sub001/internals/features/users/route"
	authMiddleware "github.com/santymrk2/school-system-sub001/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, svc *service.SolicitudService) {
	startTime = time.Now()

	// ===================== BASE / AUTH =====================
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db)

	// ===================== PORTAL (público, token) =====================
	log.Println("[INFO] Setting up PortalRoutes...")
	solicitudRoute.PortalRoutes(app, svc)

	// ===================== ADMIN (JWT + rol) =====================
	log.Println("[INFO] Setting up admin group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware())

	aspiranteRoute.AspirantesAdminRoutes(admin, db)
	solicitudRoute.SolicitudesAdminRoutes(admin, db, svc)
}
