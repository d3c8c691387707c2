// file: internals/features/admissions/solicitudes/controller/solicitud_admin_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/dto"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/model"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
	helper "github.com/santymrk2/school-system-sub001/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type SolicitudAdminController struct {
	DB        *gorm.DB
	Svc       *service.SolicitudService
	Validator *validator.Validate
}

func NewSolicitudAdminController(db *gorm.DB, svc *service.SolicitudService, v *validator.Validate) *SolicitudAdminController {
	if v == nil {
		v = validator.New()
	}
	return &SolicitudAdminController{DB: db, Svc: svc, Validator: v}
}

/* ============================================
   Helpers
============================================ */

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload inválido")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID inválido")
	}
	return id, nil
}

// errToHTTP traduce la taxonomía del service a HTTP:
// transición ilegal → 409, selección inexistente → 422, no encontrada → 404.
func errToHTTP(c *fiber.Ctx, err error) error {
	var tiErr *service.TransicionInvalidaError
	if errors.As(err, &tiErr) {
		return helper.JsonError(c, fiber.StatusConflict, tiErr.Error())
	}
	var selErr *service.SeleccionInvalidaError
	if errors.As(err, &selErr) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "El turno elegido no está entre los propuestos")
	}
	if errors.Is(err, service.ErrCantidadTurnos) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Solicitud no encontrada")
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
}

/* ============================================
   CREATE
   POST /api/a/solicitudes-admision
============================================ */

func (ctl *SolicitudAdminController) Create(c *fiber.Ctx) error {
	var p dto.SolicitudCreateRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}
	aspiranteID, err := uuid.Parse(p.AspiranteID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "aspirante_id inválido")
	}

	ent, err := ctl.Svc.Crear(c.UserContext(), aspiranteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aspirante no encontrado")
		}
		return errToHTTP(c, err)
	}
	return helper.JsonCreated(c, "Solicitud de admisión creada", dto.FromModel(ent))
}

/* ============================================
   LIST / GET
   GET /api/a/solicitudes-admision?estado=&page=
   GET /api/a/solicitudes-admision/:id
============================================ */

func (ctl *SolicitudAdminController) List(c *fiber.Ctx) error {
	var f dto.SolicitudFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query inválida")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return helper.JsonValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&model.SolicitudAdmisionModel{}).
		Where("solicitud_deleted_at IS NULL")
	if f.Estado != nil {
		q = q.Where("solicitud_estado = ?", *f.Estado)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al contar solicitudes")
	}

	var ents []model.SolicitudAdmisionModel
	if err := q.Order("solicitud_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&ents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al listar solicitudes")
	}

	items := make([]dto.SolicitudResponse, 0, len(ents))
	for i := range ents {
		items = append(items, dto.FromModel(&ents[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(paging, total))
}

func (ctl *SolicitudAdminController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}

	var ent model.SolicitudAdmisionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("solicitud_id = ? AND solicitud_deleted_at IS NULL", id).
		First(&ent).Error; err != nil {
		return errToHTTP(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&ent))
}

/* ============================================
   TRANSICIONES
============================================ */

// POST /api/a/solicitudes-admision/:id/propuesta
func (ctl *SolicitudAdminController) EnviarPropuesta(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}
	var p dto.PropuestaRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}
	p.Normalize()

	entrada, err := p.AEntrada()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fecha de turno inválida")
	}

	ent, err := ctl.Svc.EnviarPropuesta(c.UserContext(), id, entrada)
	if err != nil {
		return errToHTTP(c, err)
	}
	return helper.JsonUpdated(c, "Propuesta enviada a la familia", dto.FromModel(ent))
}

// POST /api/a/solicitudes-admision/:id/confirmacion
// Vía de secretaría: la familia confirmó por otro medio.
func (ctl *SolicitudAdminController) ConfirmarEntrevista(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}
	var p dto.ConfirmacionRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}
	fecha, err := time.Parse("2006-01-02", p.Fecha)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fecha inválida")
	}

	ent, err := ctl.Svc.ConfirmarPorFecha(c.UserContext(), id, fecha)
	if err != nil {
		return errToHTTP(c, err)
	}
	return helper.JsonUpdated(c, "Entrevista confirmada", dto.FromModel(ent))
}

// POST /api/a/solicitudes-admision/:id/entrevista
func (ctl *SolicitudAdminController) RegistrarEntrevista(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}
	var p dto.EntrevistaRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}

	ent, err := ctl.Svc.RegistrarEntrevista(c.UserContext(), id, *p.Realizada)
	if err != nil {
		return errToHTTP(c, err)
	}
	msg := "Entrevista registrada como realizada"
	if !*p.Realizada {
		msg = "Entrevista registrada como no realizada; agenda reabierta"
	}
	return helper.JsonUpdated(c, msg, dto.FromModel(ent))
}

// POST /api/a/solicitudes-admision/:id/decision
func (ctl *SolicitudAdminController) Decidir(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}
	var p dto.DecisionRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}

	ent, err := ctl.Svc.Decidir(c.UserContext(), id, *p.Aceptar, p.Mensaje)
	if err != nil {
		return errToHTTP(c, err)
	}
	msg := "Solicitud aceptada"
	if !*p.Aceptar {
		msg = "Solicitud rechazada"
	}
	return helper.JsonUpdated(c, msg, dto.FromModel(ent))
}

// POST /api/a/solicitudes-admision/:id/rechazo
func (ctl *SolicitudAdminController) Rechazar(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errToHTTP(c, err)
	}
	var p dto.RechazoRequest
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return errToHTTP(c, err)
	}

	ent, err := ctl.Svc.Rechazar(c.UserContext(), id, p.Motivo)
	if err != nil {
		return errToHTTP(c, err)
	}
	return helper.JsonUpdated(c, "Solicitud rechazada", dto.FromModel(ent))
}
