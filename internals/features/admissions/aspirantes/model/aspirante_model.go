// file: internals/features/admissions/aspirantes/model/aspirante_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AspiranteModel representa la tabla `aspirantes`: el postulante y el
// contacto familiar que usa el portal de admisión.
type AspiranteModel struct {
	AspiranteID       uuid.UUID `json:"aspirante_id"        gorm:"column:aspirante_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AspiranteNombre   string    `json:"aspirante_nombre"    gorm:"column:aspirante_nombre;type:varchar(100);not null"`
	AspiranteApellido string    `json:"aspirante_apellido"  gorm:"column:aspirante_apellido;type:varchar(100);not null"`

	AspiranteFechaNacimiento *time.Time `json:"aspirante_fecha_nacimiento,omitempty" gorm:"column:aspirante_fecha_nacimiento;type:date"`
	AspiranteCursoSolicitado *string    `json:"aspirante_curso_solicitado,omitempty" gorm:"column:aspirante_curso_solicitado;type:varchar(60)"`

	// Contacto familiar: el mail es la identidad liviana del portal.
	AspiranteEmailFamilia    *string `json:"aspirante_email_familia,omitempty"    gorm:"column:aspirante_email_familia;type:varchar(120);uniqueIndex:uq_aspirantes_email_familia,where:aspirante_deleted_at IS NULL"`
	AspiranteTelefonoFamilia *string `json:"aspirante_telefono_familia,omitempty" gorm:"column:aspirante_telefono_familia;type:varchar(40)"`

	AspiranteObservaciones *string `json:"aspirante_observaciones,omitempty" gorm:"column:aspirante_observaciones;type:text"`

	AspiranteCreatedAt time.Time  `json:"aspirante_created_at"           gorm:"column:aspirante_created_at;type:timestamp;autoCreateTime"`
	AspiranteUpdatedAt *time.Time `json:"aspirante_updated_at,omitempty" gorm:"column:aspirante_updated_at;type:timestamp"`
	AspiranteDeletedAt *time.Time `json:"aspirante_deleted_at,omitempty" gorm:"column:aspirante_deleted_at;type:timestamp;index"`
}

func (AspiranteModel) TableName() string { return "aspirantes" }
