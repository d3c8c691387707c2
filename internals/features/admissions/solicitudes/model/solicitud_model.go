// file: internals/features/admissions/solicitudes/model/solicitud_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	aspiranteModel "github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/model"
)

// SolicitudAdmisionModel representa la tabla `solicitudes_admision`.
// El estado vive en solicitud_estado y solo se muta vía service.Aplicar;
// el resto de columnas de agenda acompaña al estado (ver invariantes en
// el paquete service).
type SolicitudAdmisionModel struct {
	SolicitudID          uuid.UUID `json:"solicitud_id"           gorm:"column:solicitud_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SolicitudAspiranteID uuid.UUID `json:"solicitud_aspirante_id" gorm:"column:solicitud_aspirante_id;type:uuid;not null;index"`

	SolicitudEstado string `json:"solicitud_estado" gorm:"column:solicitud_estado;type:varchar(30);not null;index"`

	// Turnos propuestos (0..3) como JSONB: [{fecha, hora_desde, hora_hasta, aclaraciones}]
	SolicitudTurnos datatypes.JSON `json:"solicitud_turnos,omitempty" gorm:"column:solicitud_turnos;type:jsonb"`

	SolicitudDocumentosRequeridos *string `json:"solicitud_documentos_requeridos,omitempty" gorm:"column:solicitud_documentos_requeridos;type:text"`
	SolicitudAdjuntosInformativos *string `json:"solicitud_adjuntos_informativos,omitempty" gorm:"column:solicitud_adjuntos_informativos;type:text"`

	// No nula sii estado = propuesta_enviada
	SolicitudFechaLimite *time.Time `json:"solicitud_fecha_limite,omitempty" gorm:"column:solicitud_fecha_limite;type:date"`

	SolicitudTurnoElegido    *int       `json:"solicitud_turno_elegido,omitempty"    gorm:"column:solicitud_turno_elegido"`
	SolicitudFechaConfirmada *time.Time `json:"solicitud_fecha_confirmada,omitempty" gorm:"column:solicitud_fecha_confirmada;type:date"`

	SolicitudEntrevistaRealizada bool    `json:"solicitud_entrevista_realizada" gorm:"column:solicitud_entrevista_realizada;not null;default:false"`
	SolicitudMotivoRechazo       *string `json:"solicitud_motivo_rechazo,omitempty" gorm:"column:solicitud_motivo_rechazo;type:text"`

	// A lo sumo un pedido de reprogramación por ciclo de propuesta
	SolicitudReprogramacionPedida     bool    `json:"solicitud_reprogramacion_pedida" gorm:"column:solicitud_reprogramacion_pedida;not null;default:false"`
	SolicitudComentarioReprogramacion *string `json:"solicitud_comentario_reprogramacion,omitempty" gorm:"column:solicitud_comentario_reprogramacion;type:text"`

	SolicitudPropuestasEnviadas int `json:"solicitud_propuestas_enviadas" gorm:"column:solicitud_propuestas_enviadas;not null;default:0"`

	SolicitudDisponibilidad *string `json:"solicitud_disponibilidad,omitempty" gorm:"column:solicitud_disponibilidad;type:varchar(200)"`
	SolicitudCupoDisponible *bool   `json:"solicitud_cupo_disponible,omitempty" gorm:"column:solicitud_cupo_disponible"`

	// Token opaco del portal de familias (no es la PK)
	SolicitudTokenPortal string `json:"-" gorm:"column:solicitud_token_portal;type:varchar(64);not null;uniqueIndex"`

	SolicitudCreatedAt time.Time  `json:"solicitud_created_at"           gorm:"column:solicitud_created_at;type:timestamp;autoCreateTime"`
	SolicitudUpdatedAt *time.Time `json:"solicitud_updated_at,omitempty" gorm:"column:solicitud_updated_at;type:timestamp"`
	SolicitudDeletedAt *time.Time `json:"solicitud_deleted_at,omitempty" gorm:"column:solicitud_deleted_at;type:timestamp;index"`

	Aspirante *aspiranteModel.AspiranteModel `json:"aspirante,omitempty" gorm:"foreignKey:SolicitudAspiranteID;references:AspiranteID"`
}

func (SolicitudAdmisionModel) TableName() string { return "solicitudes_admision" }

// TurnoJSON es la forma persistida de cada turno propuesto.
type TurnoJSON struct {
	Fecha        string `json:"fecha"` // YYYY-MM-DD
	HoraDesde    string `json:"hora_desde"`
	HoraHasta    string `json:"hora_hasta"`
	Aclaraciones string `json:"aclaraciones,omitempty"`
}

func (m *SolicitudAdmisionModel) DecodeTurnos() ([]TurnoJSON, error) {
	if len(m.SolicitudTurnos) == 0 {
		return nil, nil
	}
	var ts []TurnoJSON
	if err := json.Unmarshal(m.SolicitudTurnos, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (m *SolicitudAdmisionModel) EncodeTurnos(ts []TurnoJSON) error {
	if len(ts) == 0 {
		m.SolicitudTurnos = nil
		return nil
	}
	raw, err := json.Marshal(ts)
	if err != nil {
		return err
	}
	m.SolicitudTurnos = datatypes.JSON(raw)
	return nil
}
