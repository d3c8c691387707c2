// file: internals/features/users/model/usuario_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UsuarioModel representa la tabla `usuarios`: el personal del colegio.
type UsuarioModel struct {
	UsuarioID       uuid.UUID `json:"usuario_id"       gorm:"column:usuario_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UsuarioNombre   string    `json:"usuario_nombre"   gorm:"column:usuario_nombre;type:varchar(100);not null"`
	UsuarioEmail    string    `json:"usuario_email"    gorm:"column:usuario_email;type:varchar(120);not null;uniqueIndex"`
	UsuarioPassword string    `json:"-"                gorm:"column:usuario_password;type:varchar(100);not null"`
	UsuarioRol      string    `json:"usuario_rol"      gorm:"column:usuario_rol;type:varchar(30);not null;default:'administracion'"`
	UsuarioActivo   bool      `json:"usuario_activo"   gorm:"column:usuario_activo;not null;default:true"`

	UsuarioCreatedAt time.Time  `json:"usuario_created_at"           gorm:"column:usuario_created_at;type:timestamp;autoCreateTime"`
	UsuarioUpdatedAt *time.Time `json:"usuario_updated_at,omitempty" gorm:"column:usuario_updated_at;type:timestamp"`
	UsuarioDeletedAt *time.Time `json:"usuario_deleted_at,omitempty" gorm:"column:usuario_deleted_at;type:timestamp;index"`
}

func (UsuarioModel) TableName() string { return "usuarios" }
