// file: internals/features/admissions/solicitudes/service/estado.go
//
// Máquina de estados de la solicitud de admisión. Todo acá es puro:
// Aplicar computa (ficha nueva, avisos a enviar) sin tocar base ni mail.
// La persistencia y el envío quedan del lado del orquestador, después
// de que la decisión ya está tomada.
package service

import (
	"fmt"
	"time"
)

// =======================
// Estados
// =======================

type Estado string

const (
	EstadoPendiente             Estado = "pendiente"
	EstadoPropuestaEnviada      Estado = "propuesta_enviada"
	EstadoEntrevistaProgramada  Estado = "entrevista_programada"
	EstadoEntrevistaRealizada   Estado = "entrevista_realizada"
	EstadoAceptada              Estado = "aceptada"
	EstadoRechazada             Estado = "rechazada"
)

// Terminal: sin transiciones salientes. El rechazo es definitivo
// (también cuando lo produce el barrido de vencimientos).
func (e Estado) Terminal() bool {
	return e == EstadoAceptada || e == EstadoRechazada
}

func (e Estado) Valido() bool {
	switch e {
	case EstadoPendiente, EstadoPropuestaEnviada, EstadoEntrevistaProgramada,
		EstadoEntrevistaRealizada, EstadoAceptada, EstadoRechazada:
		return true
	}
	return false
}

// =======================
// Ficha (snapshot puro de la solicitud)
// =======================

// Turno es un turno de entrevista propuesto por el colegio.
type Turno struct {
	Fecha        time.Time // solo fecha, hora en cero
	HoraDesde    string
	HoraHasta    string
	Aclaraciones string
}

// Ficha es la vista pura de la solicitud sobre la que decide Aplicar.
type Ficha struct {
	Estado                   Estado
	Turnos                   []Turno
	FechaLimite              *time.Time
	TurnoElegido             *int
	FechaConfirmada          *time.Time
	EntrevistaRealizada      bool
	MotivoRechazo            *string
	ReprogramacionPedida     bool
	ComentarioReprogramacion *string
	PropuestasEnviadas       int
}

// =======================
// Eventos
// =======================

type Evento interface {
	Nombre() string
}

// EvEnviarPropuesta: dirección propone 1..3 turnos. FechaLimite viene ya
// calculada por la agenda (hoy + plazo), la máquina no mira el reloj.
type EvEnviarPropuesta struct {
	Turnos      []Turno
	FechaLimite time.Time
}

// EvConfirmarTurno: la familia (o secretaría, por teléfono) elige un turno.
type EvConfirmarTurno struct {
	Indice int
}

// EvRegistrarEntrevista: el personal asienta si la entrevista se realizó.
// Si no se realizó, la solicitud vuelve a propuesta_enviada para
// reprogramar; NuevaFechaLimite rearma el plazo de respuesta en ese caso.
type EvRegistrarEntrevista struct {
	Realizada        bool
	NuevaFechaLimite time.Time
}

// EvDecidir: decisión final, solo con entrevista realizada.
type EvDecidir struct {
	Aceptar bool
	Mensaje string
}

// EvRechazar: rechazo directo desde cualquier estado no terminal.
type EvRechazar struct {
	Motivo string
}

// EvPedirReprogramacion: la familia pide otros horarios. Uno por ciclo.
type EvPedirReprogramacion struct {
	Comentario string
}

func (EvEnviarPropuesta) Nombre() string     { return "enviar_propuesta" }
func (EvConfirmarTurno) Nombre() string      { return "confirmar_turno" }
func (EvRegistrarEntrevista) Nombre() string { return "registrar_entrevista" }
func (EvDecidir) Nombre() string             { return "decidir" }
func (EvRechazar) Nombre() string            { return "rechazar" }
func (EvPedirReprogramacion) Nombre() string { return "pedir_reprogramacion" }

// =======================
// Avisos (efectos pendientes, no enviados todavía)
// =======================

type TipoAviso string

const (
	AvisoPropuesta    TipoAviso = "propuesta"
	AvisoConfirmacion TipoAviso = "confirmacion"
	AvisoAceptacion   TipoAviso = "aceptacion"
	AvisoRechazo      TipoAviso = "rechazo"
)

// Aviso describe un mail que corresponde enviar por la transición.
type Aviso struct {
	Tipo TipoAviso

	// propuesta
	Turnos      []Turno
	FechaLimite time.Time
	Renovada    bool // false en la primera propuesta, true en las siguientes

	// confirmacion
	Turno *Turno

	// aceptacion / rechazo
	Mensaje string
	Motivo  string
}

// =======================
// Errores
// =======================

// TransicionInvalidaError: el evento no es legal desde el estado actual.
// Siempre es un error del caller; nunca se reintenta solo.
type TransicionInvalidaError struct {
	Desde  Estado
	Evento string
}

func (e *TransicionInvalidaError) Error() string {
	return fmt.Sprintf("transición inválida: evento %q desde estado %q", e.Evento, e.Desde)
}

// SeleccionInvalidaError: la familia eligió un turno que no existe.
type SeleccionInvalidaError struct {
	Indice   int
	Cantidad int
}

func (e *SeleccionInvalidaError) Error() string {
	return fmt.Sprintf("selección inválida: turno %d de %d propuestos", e.Indice, e.Cantidad)
}

func transicionInvalida(f Ficha, ev Evento) error {
	return &TransicionInvalidaError{Desde: f.Estado, Evento: ev.Nombre()}
}

// =======================
// Aplicar
// =======================

// Aplicar computa la transición. Si devuelve error, la ficha retornada es
// la recibida, sin cambios, y no hay avisos.
func Aplicar(f Ficha, ev Evento) (Ficha, []Aviso, error) {
	switch e := ev.(type) {
	case EvEnviarPropuesta:
		return aplicarEnviarPropuesta(f, e)
	case EvConfirmarTurno:
		return aplicarConfirmarTurno(f, e)
	case EvRegistrarEntrevista:
		return aplicarRegistrarEntrevista(f, e)
	case EvDecidir:
		return aplicarDecidir(f, e)
	case EvRechazar:
		return aplicarRechazar(f, e)
	case EvPedirReprogramacion:
		return aplicarPedirReprogramacion(f, e)
	default:
		return f, nil, fmt.Errorf("evento desconocido %T", ev)
	}
}

func aplicarEnviarPropuesta(f Ficha, e EvEnviarPropuesta) (Ficha, []Aviso, error) {
	// rechazada es terminal: una solicitud rechazada no se re-propone.
	if f.Estado != EstadoPendiente && f.Estado != EstadoPropuestaEnviada {
		return f, nil, transicionInvalida(f, e)
	}
	if len(e.Turnos) < 1 || len(e.Turnos) > MaxTurnosPropuestos {
		return f, nil, ErrCantidadTurnos
	}

	limite := trunc(e.FechaLimite)
	f.Estado = EstadoPropuestaEnviada
	f.Turnos = append([]Turno(nil), e.Turnos...)
	f.FechaLimite = &limite
	f.TurnoElegido = nil
	f.FechaConfirmada = nil
	f.EntrevistaRealizada = false
	f.MotivoRechazo = nil
	f.ReprogramacionPedida = false
	f.ComentarioReprogramacion = nil
	f.PropuestasEnviadas++

	aviso := Aviso{
		Tipo:        AvisoPropuesta,
		Turnos:      f.Turnos,
		FechaLimite: limite,
		Renovada:    f.PropuestasEnviadas > 1,
	}
	return f, []Aviso{aviso}, nil
}

func aplicarConfirmarTurno(f Ficha, e EvConfirmarTurno) (Ficha, []Aviso, error) {
	if f.Estado != EstadoPropuestaEnviada {
		return f, nil, transicionInvalida(f, e)
	}
	if e.Indice < 0 || e.Indice >= len(f.Turnos) {
		return f, nil, &SeleccionInvalidaError{Indice: e.Indice, Cantidad: len(f.Turnos)}
	}

	turno := f.Turnos[e.Indice]
	fecha := trunc(turno.Fecha)
	idx := e.Indice

	f.Estado = EstadoEntrevistaProgramada
	f.TurnoElegido = &idx
	f.FechaConfirmada = &fecha
	f.FechaLimite = nil
	f.MotivoRechazo = nil

	return f, []Aviso{{Tipo: AvisoConfirmacion, Turno: &turno}}, nil
}

func aplicarRegistrarEntrevista(f Ficha, e EvRegistrarEntrevista) (Ficha, []Aviso, error) {
	if f.Estado != EstadoEntrevistaProgramada && f.Estado != EstadoEntrevistaRealizada {
		return f, nil, transicionInvalida(f, e)
	}

	if e.Realizada {
		f.Estado = EstadoEntrevistaRealizada
		f.EntrevistaRealizada = true
		return f, nil, nil
	}

	// No se realizó: se reabre la agenda. Los turnos propuestos se
	// conservan y el plazo de respuesta se rearma.
	if len(f.Turnos) == 0 {
		return f, nil, transicionInvalida(f, e)
	}
	limite := trunc(e.NuevaFechaLimite)
	f.Estado = EstadoPropuestaEnviada
	f.EntrevistaRealizada = false
	f.TurnoElegido = nil
	f.FechaConfirmada = nil
	f.FechaLimite = &limite
	return f, nil, nil
}

func aplicarDecidir(f Ficha, e EvDecidir) (Ficha, []Aviso, error) {
	if f.Estado != EstadoEntrevistaRealizada {
		return f, nil, transicionInvalida(f, e)
	}

	if e.Aceptar {
		f.Estado = EstadoAceptada
		f.MotivoRechazo = nil
		return f, []Aviso{{Tipo: AvisoAceptacion, Mensaje: e.Mensaje}}, nil
	}

	motivo := e.Mensaje
	f.Estado = EstadoRechazada
	f.MotivoRechazo = &motivo
	f.FechaLimite = nil
	f.TurnoElegido = nil
	f.FechaConfirmada = nil
	f.ReprogramacionPedida = false
	f.ComentarioReprogramacion = nil
	return f, []Aviso{{Tipo: AvisoRechazo, Motivo: motivo}}, nil
}

func aplicarRechazar(f Ficha, e EvRechazar) (Ficha, []Aviso, error) {
	if f.Estado.Terminal() {
		return f, nil, transicionInvalida(f, e)
	}

	motivo := e.Motivo
	f.Estado = EstadoRechazada
	f.MotivoRechazo = &motivo
	f.FechaLimite = nil
	f.TurnoElegido = nil
	f.FechaConfirmada = nil
	f.EntrevistaRealizada = false
	f.ReprogramacionPedida = false
	f.ComentarioReprogramacion = nil
	return f, []Aviso{{Tipo: AvisoRechazo, Motivo: motivo}}, nil
}

func aplicarPedirReprogramacion(f Ficha, e EvPedirReprogramacion) (Ficha, []Aviso, error) {
	if f.Estado != EstadoPropuestaEnviada || f.ReprogramacionPedida {
		return f, nil, transicionInvalida(f, e)
	}

	comentario := e.Comentario
	f.ReprogramacionPedida = true
	f.ComentarioReprogramacion = &comentario
	// Sin aviso: lo revisa secretaría a mano.
	return f, nil, nil
}
