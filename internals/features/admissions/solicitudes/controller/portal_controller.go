// file: internals/features/admissions/solicitudes/controller/portal_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/dto"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
	helper "github.com/santymrk2/school-system-sub001/internals/helpers"
)

// PortalController expone la superficie pública del portal de familias:
// sin login, solo token. Toda denegación responde igual, sin detalle.
type PortalController struct {
	Svc       *service.SolicitudService
	Validator *validator.Validate
}

func NewPortalController(svc *service.SolicitudService, v *validator.Validate) *PortalController {
	if v == nil {
		v = validator.New()
	}
	return &PortalController{Svc: svc, Validator: v}
}

func portalErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrAccesoDenegado) {
		// Mensaje único: no se confirma ni se niega que el token exista.
		return helper.JsonError(c, fiber.StatusForbidden, "Acceso denegado")
	}
	var selErr *service.SeleccionInvalidaError
	if errors.As(err, &selErr) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "El turno elegido no está entre los propuestos")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
}

// GET /portal/admision/:token?email=
func (ctl *PortalController) Vista(c *fiber.Ctx) error {
	vista, err := ctl.Svc.VistaPortal(c.UserContext(), c.Params("token"), c.Query("email"))
	if err != nil {
		return portalErr(c, err)
	}
	return helper.JsonOK(c, "ok", vista)
}

// POST /portal/admision/:token/seleccion
func (ctl *PortalController) EnviarSeleccion(c *fiber.Ctx) error {
	var p dto.PortalSeleccionRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sel := service.SeleccionPortal{Comentario: strings.TrimSpace(p.Comentario)}
	if strings.EqualFold(strings.TrimSpace(p.Seleccion), service.SeleccionNingunaDisponible) {
		sel.Ninguna = true
	} else {
		idx, err := strconv.Atoi(strings.TrimSpace(p.Seleccion))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Selección inválida")
		}
		sel.Indice = &idx
	}

	vista, err := ctl.Svc.EnviarSeleccion(c.UserContext(), c.Params("token"), p.Email, sel)
	if err != nil {
		return portalErr(c, err)
	}

	return helper.JsonOK(c, "ok", vista)
}
