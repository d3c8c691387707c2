// file: internals/features/admissions/aspirantes/dto/aspirante_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/model"
)

// =======================
// Request DTO
// =======================

type AspiranteCreateRequest struct {
	AspiranteNombre   string `json:"aspirante_nombre"   validate:"required,min=2,max=100"`
	AspiranteApellido string `json:"aspirante_apellido" validate:"required,min=2,max=100"`

	AspiranteFechaNacimiento *time.Time `json:"aspirante_fecha_nacimiento,omitempty"`
	AspiranteCursoSolicitado *string    `json:"aspirante_curso_solicitado,omitempty" validate:"omitempty,max=60"`

	AspiranteEmailFamilia    *string `json:"aspirante_email_familia,omitempty"    validate:"omitempty,email"`
	AspiranteTelefonoFamilia *string `json:"aspirante_telefono_familia,omitempty" validate:"omitempty,max=40"`

	AspiranteObservaciones *string `json:"aspirante_observaciones,omitempty" validate:"omitempty,max=2000"`
}

type AspiranteUpdateRequest struct {
	AspiranteNombre   *string `json:"aspirante_nombre,omitempty"   validate:"omitempty,min=2,max=100"`
	AspiranteApellido *string `json:"aspirante_apellido,omitempty" validate:"omitempty,min=2,max=100"`

	AspiranteFechaNacimiento *time.Time `json:"aspirante_fecha_nacimiento,omitempty"`
	AspiranteCursoSolicitado *string    `json:"aspirante_curso_solicitado,omitempty" validate:"omitempty,max=60"`

	AspiranteEmailFamilia    *string `json:"aspirante_email_familia,omitempty"    validate:"omitempty,email"`
	AspiranteTelefonoFamilia *string `json:"aspirante_telefono_familia,omitempty" validate:"omitempty,max=40"`

	AspiranteObservaciones *string `json:"aspirante_observaciones,omitempty" validate:"omitempty,max=2000"`
}

// =======================
// Helpers
// =======================

func (p *AspiranteCreateRequest) Normalize() {
	p.AspiranteNombre = strings.TrimSpace(p.AspiranteNombre)
	p.AspiranteApellido = strings.TrimSpace(p.AspiranteApellido)
	if p.AspiranteEmailFamilia != nil {
		e := strings.ToLower(strings.TrimSpace(*p.AspiranteEmailFamilia))
		p.AspiranteEmailFamilia = &e
	}
}

func (p *AspiranteCreateRequest) ToModel() model.AspiranteModel {
	return model.AspiranteModel{
		AspiranteNombre:          p.AspiranteNombre,
		AspiranteApellido:        p.AspiranteApellido,
		AspiranteFechaNacimiento: p.AspiranteFechaNacimiento,
		AspiranteCursoSolicitado: p.AspiranteCursoSolicitado,
		AspiranteEmailFamilia:    p.AspiranteEmailFamilia,
		AspiranteTelefonoFamilia: p.AspiranteTelefonoFamilia,
		AspiranteObservaciones:   p.AspiranteObservaciones,
	}
}

func (u *AspiranteUpdateRequest) ApplyUpdates(ent *model.AspiranteModel) {
	if u.AspiranteNombre != nil {
		ent.AspiranteNombre = strings.TrimSpace(*u.AspiranteNombre)
	}
	if u.AspiranteApellido != nil {
		ent.AspiranteApellido = strings.TrimSpace(*u.AspiranteApellido)
	}
	if u.AspiranteFechaNacimiento != nil {
		ent.AspiranteFechaNacimiento = u.AspiranteFechaNacimiento
	}
	if u.AspiranteCursoSolicitado != nil {
		ent.AspiranteCursoSolicitado = u.AspiranteCursoSolicitado
	}
	if u.AspiranteEmailFamilia != nil {
		e := strings.ToLower(strings.TrimSpace(*u.AspiranteEmailFamilia))
		ent.AspiranteEmailFamilia = &e
	}
	if u.AspiranteTelefonoFamilia != nil {
		ent.AspiranteTelefonoFamilia = u.AspiranteTelefonoFamilia
	}
	if u.AspiranteObservaciones != nil {
		ent.AspiranteObservaciones = u.AspiranteObservaciones
	}
}

// =======================
// Response DTO
// =======================

type AspiranteResponse struct {
	AspiranteID       uuid.UUID `json:"aspirante_id"`
	AspiranteNombre   string    `json:"aspirante_nombre"`
	AspiranteApellido string    `json:"aspirante_apellido"`

	AspiranteFechaNacimiento *time.Time `json:"aspirante_fecha_nacimiento,omitempty"`
	AspiranteCursoSolicitado *string    `json:"aspirante_curso_solicitado,omitempty"`

	AspiranteEmailFamilia    *string `json:"aspirante_email_familia,omitempty"`
	AspiranteTelefonoFamilia *string `json:"aspirante_telefono_familia,omitempty"`

	AspiranteObservaciones *string `json:"aspirante_observaciones,omitempty"`

	AspiranteCreatedAt time.Time  `json:"aspirante_created_at"`
	AspiranteUpdatedAt *time.Time `json:"aspirante_updated_at,omitempty"`
}

func FromModel(m *model.AspiranteModel) AspiranteResponse {
	return AspiranteResponse{
		AspiranteID:              m.AspiranteID,
		AspiranteNombre:          m.AspiranteNombre,
		AspiranteApellido:        m.AspiranteApellido,
		AspiranteFechaNacimiento: m.AspiranteFechaNacimiento,
		AspiranteCursoSolicitado: m.AspiranteCursoSolicitado,
		AspiranteEmailFamilia:    m.AspiranteEmailFamilia,
		AspiranteTelefonoFamilia: m.AspiranteTelefonoFamilia,
		AspiranteObservaciones:   m.AspiranteObservaciones,
		AspiranteCreatedAt:       m.AspiranteCreatedAt,
		AspiranteUpdatedAt:       m.AspiranteUpdatedAt,
	}
}
