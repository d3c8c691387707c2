// file: internals/features/admissions/solicitudes/service/agenda.go
//
// Motor de agenda: plazos, selección de turnos y el texto de
// disponibilidad que ve la familia.
package service

import (
	"errors"
	"strings"
	"time"
)

const (
	// Plazo fijo de respuesta de la familia, en días corridos.
	DiasPlazoRespuesta = 15

	// Máximo de turnos por propuesta.
	MaxTurnosPropuestos = 3

	// Valor sentinela del portal: "ninguno de los turnos me sirve".
	// Se traduce a un pedido de reprogramación, no a una confirmación.
	SeleccionNingunaDisponible = "NINGUNA_DISPONIBLE"
)

// ErrCantidadTurnos: una propuesta trae menos de 1 o más de MaxTurnosPropuestos turnos.
var ErrCantidadTurnos = errors.New("la propuesta debe tener entre 1 y 3 turnos")

// errNoVencida corta el rechazo por vencimiento cuando el re-chequeo bajo
// lock encuentra que la solicitud ya no es elegible.
var errNoVencida = errors.New("la solicitud ya no está vencida")

// trunc deja solo la fecha civil, sin hora ni zona.
func trunc(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FechaLimite calcula el vencimiento de una propuesta enviada hoy:
// siempre hoy + DiasPlazoRespuesta, sin importar cuántas veces se llame.
func FechaLimite(hoy time.Time) time.Time {
	return trunc(hoy).AddDate(0, 0, DiasPlazoRespuesta)
}

// Vencida indica si el plazo ya pasó. La comparación es por fecha civil:
// el día del vencimiento todavía se puede responder.
func Vencida(limite *time.Time, hoy time.Time) bool {
	if limite == nil {
		return false
	}
	return trunc(*limite).Before(trunc(hoy))
}

// BuscarTurnoPorFecha devuelve el índice del turno propuesto cuya fecha
// coincide exactamente con la elegida (igualdad por fecha civil).
func BuscarTurnoPorFecha(turnos []Turno, fecha time.Time) (int, bool) {
	f := trunc(fecha)
	for i, t := range turnos {
		if trunc(t.Fecha).Equal(f) {
			return i, true
		}
	}
	return -1, false
}

// DescribirDisponibilidad resuelve el texto que ve la familia, en tres
// niveles: nota explícita → bandera de cupo → "Pendiente".
func DescribirDisponibilidad(nota *string, cupo *bool) string {
	if nota != nil && strings.TrimSpace(*nota) != "" {
		return strings.TrimSpace(*nota)
	}
	if cupo != nil {
		if *cupo {
			return "Con cupo disponible"
		}
		return "Sin cupo disponible"
	}
	return "Pendiente"
}
