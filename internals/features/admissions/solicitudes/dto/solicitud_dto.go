// file: internals/features/admissions/solicitudes/dto/solicitud_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/model"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
)

// =======================
// Request DTO
// =======================

type SolicitudCreateRequest struct {
	AspiranteID string `json:"aspirante_id" validate:"required,uuid4"`
}

type TurnoRequest struct {
	Fecha        string `json:"fecha"        validate:"required,datetime=2006-01-02"`
	HoraDesde    string `json:"hora_desde"   validate:"required"`
	HoraHasta    string `json:"hora_hasta"   validate:"required"`
	Aclaraciones string `json:"aclaraciones" validate:"omitempty,max=500"`
}

type PropuestaRequest struct {
	Turnos               []TurnoRequest `json:"turnos"                validate:"required,min=1,max=3,dive"`
	DocumentosRequeridos *string        `json:"documentos_requeridos" validate:"omitempty,max=2000"`
	AdjuntosInformativos *string        `json:"adjuntos_informativos" validate:"omitempty,max=2000"`
	Disponibilidad       *string        `json:"disponibilidad"        validate:"omitempty,max=200"`
	CupoDisponible       *bool          `json:"cupo_disponible"`
}

type ConfirmacionRequest struct {
	Fecha string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

type EntrevistaRequest struct {
	// puntero: distinguir "no enviado" de "false"
	Realizada *bool `json:"realizada" validate:"required"`
}

type DecisionRequest struct {
	Aceptar *bool  `json:"aceptar" validate:"required"`
	Mensaje string `json:"mensaje" validate:"omitempty,max=2000"`
}

type RechazoRequest struct {
	Motivo string `json:"motivo" validate:"required,max=2000"`
}

type SolicitudFilterRequest struct {
	Estado *string `query:"estado" validate:"omitempty,oneof=pendiente propuesta_enviada entrevista_programada entrevista_realizada aceptada rechazada"`
}

// PortalSeleccionRequest: respuesta de la familia. Seleccion es el índice
// del turno ("0".."2") o el sentinela NINGUNA_DISPONIBLE.
type PortalSeleccionRequest struct {
	Seleccion  string `json:"seleccion"  validate:"required,max=30"`
	Comentario string `json:"comentario" validate:"omitempty,max=1000"`
	Email      string `json:"email"      validate:"omitempty,email"`
}

// =======================
// Helpers
// =======================

func (p *PropuestaRequest) Normalize() {
	for i := range p.Turnos {
		p.Turnos[i].HoraDesde = strings.TrimSpace(p.Turnos[i].HoraDesde)
		p.Turnos[i].HoraHasta = strings.TrimSpace(p.Turnos[i].HoraHasta)
		p.Turnos[i].Aclaraciones = strings.TrimSpace(p.Turnos[i].Aclaraciones)
	}
}

func (p *PropuestaRequest) AEntrada() (service.PropuestaEntrada, error) {
	turnos := make([]service.Turno, 0, len(p.Turnos))
	for _, t := range p.Turnos {
		fecha, err := time.Parse("2006-01-02", t.Fecha)
		if err != nil {
			return service.PropuestaEntrada{}, err
		}
		turnos = append(turnos, service.Turno{
			Fecha:        fecha,
			HoraDesde:    t.HoraDesde,
			HoraHasta:    t.HoraHasta,
			Aclaraciones: t.Aclaraciones,
		})
	}
	return service.PropuestaEntrada{
		Turnos:               turnos,
		DocumentosRequeridos: p.DocumentosRequeridos,
		AdjuntosInformativos: p.AdjuntosInformativos,
		Disponibilidad:       p.Disponibilidad,
		CupoDisponible:       p.CupoDisponible,
	}, nil
}

// =======================
// Response DTO
// =======================

type TurnoResponse struct {
	Fecha        string `json:"fecha"`
	HoraDesde    string `json:"hora_desde"`
	HoraHasta    string `json:"hora_hasta"`
	Aclaraciones string `json:"aclaraciones,omitempty"`
}

type SolicitudResponse struct {
	SolicitudID          uuid.UUID `json:"solicitud_id"`
	SolicitudAspiranteID uuid.UUID `json:"solicitud_aspirante_id"`
	SolicitudEstado      string    `json:"solicitud_estado"`

	SolicitudTurnos []TurnoResponse `json:"solicitud_turnos"`

	SolicitudDocumentosRequeridos *string `json:"solicitud_documentos_requeridos,omitempty"`
	SolicitudAdjuntosInformativos *string `json:"solicitud_adjuntos_informativos,omitempty"`

	SolicitudFechaLimite     *string `json:"solicitud_fecha_limite,omitempty"`
	SolicitudTurnoElegido    *int    `json:"solicitud_turno_elegido,omitempty"`
	SolicitudFechaConfirmada *string `json:"solicitud_fecha_confirmada,omitempty"`

	SolicitudEntrevistaRealizada bool    `json:"solicitud_entrevista_realizada"`
	SolicitudMotivoRechazo       *string `json:"solicitud_motivo_rechazo,omitempty"`

	SolicitudReprogramacionPedida     bool    `json:"solicitud_reprogramacion_pedida"`
	SolicitudComentarioReprogramacion *string `json:"solicitud_comentario_reprogramacion,omitempty"`

	SolicitudPropuestasEnviadas int    `json:"solicitud_propuestas_enviadas"`
	SolicitudDisponibilidad     string `json:"solicitud_disponibilidad"`

	SolicitudTokenPortal string `json:"solicitud_token_portal,omitempty"`

	SolicitudCreatedAt time.Time  `json:"solicitud_created_at"`
	SolicitudUpdatedAt *time.Time `json:"solicitud_updated_at,omitempty"`
}

// FromModel arma la respuesta de staff (incluye el token del portal,
// que dirección necesita para reenviar el link a la familia).
func FromModel(m *model.SolicitudAdmisionModel) SolicitudResponse {
	resp := SolicitudResponse{
		SolicitudID:                       m.SolicitudID,
		SolicitudAspiranteID:              m.SolicitudAspiranteID,
		SolicitudEstado:                   m.SolicitudEstado,
		SolicitudTurnos:                   []TurnoResponse{},
		SolicitudDocumentosRequeridos:     m.SolicitudDocumentosRequeridos,
		SolicitudAdjuntosInformativos:     m.SolicitudAdjuntosInformativos,
		SolicitudTurnoElegido:             m.SolicitudTurnoElegido,
		SolicitudEntrevistaRealizada:      m.SolicitudEntrevistaRealizada,
		SolicitudMotivoRechazo:            m.SolicitudMotivoRechazo,
		SolicitudReprogramacionPedida:     m.SolicitudReprogramacionPedida,
		SolicitudComentarioReprogramacion: m.SolicitudComentarioReprogramacion,
		SolicitudPropuestasEnviadas:       m.SolicitudPropuestasEnviadas,
		SolicitudDisponibilidad:           service.DescribirDisponibilidad(m.SolicitudDisponibilidad, m.SolicitudCupoDisponible),
		SolicitudTokenPortal:              m.SolicitudTokenPortal,
		SolicitudCreatedAt:                m.SolicitudCreatedAt,
		SolicitudUpdatedAt:                m.SolicitudUpdatedAt,
	}
	if ts, err := m.DecodeTurnos(); err == nil {
		for _, t := range ts {
			resp.SolicitudTurnos = append(resp.SolicitudTurnos, TurnoResponse{
				Fecha:        t.Fecha,
				HoraDesde:    t.HoraDesde,
				HoraHasta:    t.HoraHasta,
				Aclaraciones: t.Aclaraciones,
			})
		}
	}
	if m.SolicitudFechaLimite != nil {
		s := m.SolicitudFechaLimite.Format("2006-01-02")
		resp.SolicitudFechaLimite = &s
	}
	if m.SolicitudFechaConfirmada != nil {
		s := m.SolicitudFechaConfirmada.Format("2006-01-02")
		resp.SolicitudFechaConfirmada = &s
	}
	return resp
}
