// file: internals/features/admissions/solicitudes/service/solicitud_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	aspiranteModel "github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/model"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/model"
	helper "github.com/santymrk2/school-system-sub001/internals/helpers"
	"github.com/santymrk2/school-system-sub001/internals/helpers/mailer"
)

// Motivo con el que el barrido rechaza propuestas vencidas.
const MotivoVencimiento = "Sin respuesta dentro del plazo"

// SolicitudService orquesta las transiciones: carga con lock de fila,
// aplica la máquina pura, persiste y recién después despacha avisos.
type SolicitudService struct {
	DB     *gorm.DB
	Correo mailer.Mailer
	Ahora  func() time.Time
}

func NewSolicitudService(db *gorm.DB, correo mailer.Mailer) *SolicitudService {
	return &SolicitudService{DB: db, Correo: correo, Ahora: time.Now}
}

// =======================
// Ficha <-> modelo
// =======================

func fichaDe(m *model.SolicitudAdmisionModel) (Ficha, error) {
	ts, err := m.DecodeTurnos()
	if err != nil {
		return Ficha{}, err
	}
	turnos := make([]Turno, 0, len(ts))
	for _, t := range ts {
		fecha, err := time.Parse("2006-01-02", t.Fecha)
		if err != nil {
			return Ficha{}, err
		}
		turnos = append(turnos, Turno{
			Fecha:        fecha,
			HoraDesde:    t.HoraDesde,
			HoraHasta:    t.HoraHasta,
			Aclaraciones: t.Aclaraciones,
		})
	}
	return Ficha{
		Estado:                   Estado(m.SolicitudEstado),
		Turnos:                   turnos,
		FechaLimite:              m.SolicitudFechaLimite,
		TurnoElegido:             m.SolicitudTurnoElegido,
		FechaConfirmada:          m.SolicitudFechaConfirmada,
		EntrevistaRealizada:      m.SolicitudEntrevistaRealizada,
		MotivoRechazo:            m.SolicitudMotivoRechazo,
		ReprogramacionPedida:     m.SolicitudReprogramacionPedida,
		ComentarioReprogramacion: m.SolicitudComentarioReprogramacion,
		PropuestasEnviadas:       m.SolicitudPropuestasEnviadas,
	}, nil
}

func volcarFicha(f Ficha, m *model.SolicitudAdmisionModel) error {
	ts := make([]model.TurnoJSON, 0, len(f.Turnos))
	for _, t := range f.Turnos {
		ts = append(ts, model.TurnoJSON{
			Fecha:        t.Fecha.Format("2006-01-02"),
			HoraDesde:    t.HoraDesde,
			HoraHasta:    t.HoraHasta,
			Aclaraciones: t.Aclaraciones,
		})
	}
	if err := m.EncodeTurnos(ts); err != nil {
		return err
	}
	m.SolicitudEstado = string(f.Estado)
	m.SolicitudFechaLimite = f.FechaLimite
	m.SolicitudTurnoElegido = f.TurnoElegido
	m.SolicitudFechaConfirmada = f.FechaConfirmada
	m.SolicitudEntrevistaRealizada = f.EntrevistaRealizada
	m.SolicitudMotivoRechazo = f.MotivoRechazo
	m.SolicitudReprogramacionPedida = f.ReprogramacionPedida
	m.SolicitudComentarioReprogramacion = f.ComentarioReprogramacion
	m.SolicitudPropuestasEnviadas = f.PropuestasEnviadas
	return nil
}

func camposFicha(m *model.SolicitudAdmisionModel, ahora time.Time) map[string]any {
	return map[string]any{
		"solicitud_estado":                    m.SolicitudEstado,
		"solicitud_turnos":                    m.SolicitudTurnos,
		"solicitud_fecha_limite":              m.SolicitudFechaLimite,
		"solicitud_turno_elegido":             m.SolicitudTurnoElegido,
		"solicitud_fecha_confirmada":          m.SolicitudFechaConfirmada,
		"solicitud_entrevista_realizada":      m.SolicitudEntrevistaRealizada,
		"solicitud_motivo_rechazo":            m.SolicitudMotivoRechazo,
		"solicitud_reprogramacion_pedida":     m.SolicitudReprogramacionPedida,
		"solicitud_comentario_reprogramacion": m.SolicitudComentarioReprogramacion,
		"solicitud_propuestas_enviadas":       m.SolicitudPropuestasEnviadas,
		"solicitud_updated_at":                ahora,
	}
}

// =======================
// Alta
// =======================

func (s *SolicitudService) Crear(ctx context.Context, aspiranteID uuid.UUID) (*model.SolicitudAdmisionModel, error) {
	var asp aspiranteModel.AspiranteModel
	if err := s.DB.WithContext(ctx).
		Where("aspirante_id = ? AND aspirante_deleted_at IS NULL", aspiranteID).
		First(&asp).Error; err != nil {
		return nil, err
	}

	token, err := helper.NuevoTokenPortal()
	if err != nil {
		return nil, err
	}

	ent := model.SolicitudAdmisionModel{
		SolicitudAspiranteID: aspiranteID,
		SolicitudEstado:      string(EstadoPendiente),
		SolicitudTokenPortal: token,
	}
	if err := s.DB.WithContext(ctx).Create(&ent).Error; err != nil {
		return nil, err
	}
	return &ent, nil
}

// =======================
// Núcleo transaccional
// =======================

// extras: columnas acompañantes (no decididas por la máquina) que se
// persisten en la misma transacción, p.ej. documentos de una propuesta.
func (s *SolicitudService) aplicarYGuardar(
	ctx context.Context,
	id uuid.UUID,
	armarEvento func(Ficha) (Evento, error),
	extras map[string]any,
) (*model.SolicitudAdmisionModel, error) {
	var ent model.SolicitudAdmisionModel
	var avisos []Aviso

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock de fila: transiciones concurrentes sobre la misma
		// solicitud se serializan acá; el que pierde ve el estado nuevo.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("solicitud_id = ? AND solicitud_deleted_at IS NULL", id).
			First(&ent).Error; err != nil {
			return err
		}

		ficha, err := fichaDe(&ent)
		if err != nil {
			return err
		}
		ev, err := armarEvento(ficha)
		if err != nil {
			return err
		}
		nueva, avs, err := Aplicar(ficha, ev)
		if err != nil {
			return err
		}
		if err := volcarFicha(nueva, &ent); err != nil {
			return err
		}

		campos := camposFicha(&ent, s.Ahora())
		for k, v := range extras {
			campos[k] = v
		}
		if err := tx.Model(&model.SolicitudAdmisionModel{}).
			Where("solicitud_id = ?", id).
			Updates(campos).Error; err != nil {
			return err
		}

		avisos = avs
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Avisos después del commit: el estado ya quedó decidido y guardado,
	// el mail no participa de la transacción.
	s.notificar(ctx, &ent, avisos)
	return &ent, nil
}

func (s *SolicitudService) notificar(ctx context.Context, ent *model.SolicitudAdmisionModel, avisos []Aviso) {
	if len(avisos) == 0 {
		return
	}
	var asp aspiranteModel.AspiranteModel
	if err := s.DB.WithContext(ctx).
		Where("aspirante_id = ?", ent.SolicitudAspiranteID).
		First(&asp).Error; err != nil {
		log.Printf("[AVISO] no se pudo cargar aspirante %s: %v", ent.SolicitudAspiranteID, err)
		return
	}
	dest := DestinatarioAviso{Aspirante: asp.AspiranteNombre + " " + asp.AspiranteApellido}
	if asp.AspiranteEmailFamilia != nil {
		dest.Email = *asp.AspiranteEmailFamilia
	}
	EnviarAvisos(s.Correo, dest, avisos)
}

// =======================
// Operaciones de staff
// =======================

type PropuestaEntrada struct {
	Turnos               []Turno
	DocumentosRequeridos *string
	AdjuntosInformativos *string
	Disponibilidad       *string
	CupoDisponible       *bool
}

func (s *SolicitudService) EnviarPropuesta(ctx context.Context, id uuid.UUID, p PropuestaEntrada) (*model.SolicitudAdmisionModel, error) {
	extras := map[string]any{}
	if p.DocumentosRequeridos != nil {
		extras["solicitud_documentos_requeridos"] = p.DocumentosRequeridos
	}
	if p.AdjuntosInformativos != nil {
		extras["solicitud_adjuntos_informativos"] = p.AdjuntosInformativos
	}
	if p.Disponibilidad != nil {
		extras["solicitud_disponibilidad"] = p.Disponibilidad
	}
	if p.CupoDisponible != nil {
		extras["solicitud_cupo_disponible"] = p.CupoDisponible
	}
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvEnviarPropuesta{
			Turnos:      p.Turnos,
			FechaLimite: FechaLimite(s.Ahora()),
		}, nil
	}, extras)
}

// ConfirmarPorFecha: vía de secretaría (la familia avisó por teléfono).
// La fecha tiene que coincidir con un turno propuesto.
func (s *SolicitudService) ConfirmarPorFecha(ctx context.Context, id uuid.UUID, fecha time.Time) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(f Ficha) (Evento, error) {
		idx, ok := BuscarTurnoPorFecha(f.Turnos, fecha)
		if !ok {
			return nil, &SeleccionInvalidaError{Indice: -1, Cantidad: len(f.Turnos)}
		}
		return EvConfirmarTurno{Indice: idx}, nil
	}, nil)
}

func (s *SolicitudService) ConfirmarPorIndice(ctx context.Context, id uuid.UUID, indice int) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvConfirmarTurno{Indice: indice}, nil
	}, nil)
}

func (s *SolicitudService) RegistrarEntrevista(ctx context.Context, id uuid.UUID, realizada bool) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvRegistrarEntrevista{
			Realizada:        realizada,
			NuevaFechaLimite: FechaLimite(s.Ahora()),
		}, nil
	}, nil)
}

func (s *SolicitudService) Decidir(ctx context.Context, id uuid.UUID, aceptar bool, mensaje string) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvDecidir{Aceptar: aceptar, Mensaje: mensaje}, nil
	}, nil)
}

func (s *SolicitudService) Rechazar(ctx context.Context, id uuid.UUID, motivo string) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvRechazar{Motivo: motivo}, nil
	}, nil)
}

func (s *SolicitudService) PedirReprogramacion(ctx context.Context, id uuid.UUID, comentario string) (*model.SolicitudAdmisionModel, error) {
	return s.aplicarYGuardar(ctx, id, func(Ficha) (Evento, error) {
		return EvPedirReprogramacion{Comentario: comentario}, nil
	}, nil)
}

// =======================
// Vencimientos (consumido por el barrido)
// =======================

// BuscarVencidas lista las solicitudes con propuesta vencida al día dado.
func (s *SolicitudService) BuscarVencidas(ctx context.Context, hoy time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&model.SolicitudAdmisionModel{}).
		Where("solicitud_estado = ? AND solicitud_fecha_limite < ? AND solicitud_deleted_at IS NULL",
			string(EstadoPropuestaEnviada), trunc(hoy)).
		Pluck("solicitud_id", &ids).Error
	return ids, err
}

// RechazarPorVencimiento re-chequea bajo lock antes de actuar: si la
// solicitud ya salió de propuesta_enviada (o el plazo corrió), es no-op.
func (s *SolicitudService) RechazarPorVencimiento(ctx context.Context, id uuid.UUID) error {
	_, err := s.aplicarYGuardar(ctx, id, func(f Ficha) (Evento, error) {
		if f.Estado != EstadoPropuestaEnviada || !Vencida(f.FechaLimite, s.Ahora()) {
			return nil, errNoVencida
		}
		return EvRechazar{Motivo: MotivoVencimiento}, nil
	}, nil)
	if err == errNoVencida {
		return nil
	}
	return err
}
