// file: internals/features/admissions/aspirantes/controller/aspirante_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/dto"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/model"
	helper "github.com/santymrk2/school-system-sub001/internals/helpers"
)

type AspiranteController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAspiranteController(db *gorm.DB, v *validator.Validate) *AspiranteController {
	if v == nil {
		v = validator.New()
	}
	return &AspiranteController{DB: db, Validator: v}
}

func esViolacionUnique(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// POST /api/a/aspirantes
func (ctl *AspiranteController) Create(c *fiber.Ctx) error {
	var p dto.AspiranteCreateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p.Normalize()

	ent := p.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&ent).Error; err != nil {
		if esViolacionUnique(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Ya existe un aspirante con ese email de familia")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear aspirante")
	}
	return helper.JsonCreated(c, "Aspirante creado", dto.FromModel(&ent))
}

// GET /api/a/aspirantes
func (ctl *AspiranteController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&model.AspiranteModel{}).
		Where("aspirante_deleted_at IS NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al contar aspirantes")
	}

	var ents []model.AspiranteModel
	if err := q.Order("aspirante_apellido ASC, aspirante_nombre ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&ents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al listar aspirantes")
	}

	items := make([]dto.AspiranteResponse, 0, len(ents))
	for i := range ents {
		items = append(items, dto.FromModel(&ents[i]))
	}
	return helper.JsonList(c, "ok", items, helper.BuildPagination(paging, total))
}

// GET /api/a/aspirantes/:id
func (ctl *AspiranteController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var ent model.AspiranteModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("aspirante_id = ? AND aspirante_deleted_at IS NULL", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aspirante no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar aspirante")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&ent))
}

// PATCH /api/a/aspirantes/:id
func (ctl *AspiranteController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var p dto.AspiranteUpdateRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var ent model.AspiranteModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("aspirante_id = ? AND aspirante_deleted_at IS NULL", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aspirante no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al buscar aspirante")
	}

	p.ApplyUpdates(&ent)
	ahora := time.Now()
	ent.AspiranteUpdatedAt = &ahora
	if err := ctl.DB.WithContext(c.UserContext()).Save(&ent).Error; err != nil {
		if esViolacionUnique(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Ya existe un aspirante con ese email de familia")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar aspirante")
	}
	return helper.JsonUpdated(c, "Aspirante actualizado", dto.FromModel(&ent))
}

// DELETE /api/a/aspirantes/:id (baja lógica)
func (ctl *AspiranteController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.AspiranteModel{}).
		Where("aspirante_id = ? AND aspirante_deleted_at IS NULL", id).
		Update("aspirante_deleted_at", time.Now())
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar aspirante")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Aspirante no encontrado")
	}
	return helper.JsonDeleted(c, "Aspirante eliminado", fiber.Map{"aspirante_id": id})
}
