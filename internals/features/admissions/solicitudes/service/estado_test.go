package service

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func turnosDeMarzo() []Turno {
	return []Turno{
		{Fecha: fecha(2024, 3, 10), HoraDesde: "09:00", HoraHasta: "10:00"},
		{Fecha: fecha(2024, 3, 12), HoraDesde: "14:00", HoraHasta: "15:00", Aclaraciones: "Traer DNI"},
	}
}

func fichaPendiente() Ficha {
	return Ficha{Estado: EstadoPendiente}
}

func fichaConPropuesta(t *testing.T) Ficha {
	t.Helper()
	f, _, err := Aplicar(fichaPendiente(), EvEnviarPropuesta{
		Turnos:      turnosDeMarzo(),
		FechaLimite: fecha(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("enviar propuesta: %v", err)
	}
	return f
}

func TestEnviarPropuestaDesdePendiente(t *testing.T) {
	limite := fecha(2024, 3, 1)
	f, avisos, err := Aplicar(fichaPendiente(), EvEnviarPropuesta{
		Turnos:      turnosDeMarzo(),
		FechaLimite: limite,
	})
	if err != nil {
		t.Fatalf("enviar propuesta: %v", err)
	}
	if f.Estado != EstadoPropuestaEnviada {
		t.Fatalf("estado esperado propuesta_enviada, quedó %q", f.Estado)
	}
	if f.FechaLimite == nil || !f.FechaLimite.Equal(limite) {
		t.Fatalf("fecha límite esperada %v, quedó %v", limite, f.FechaLimite)
	}
	if f.PropuestasEnviadas != 1 {
		t.Fatalf("contador esperado 1, quedó %d", f.PropuestasEnviadas)
	}
	if len(avisos) != 1 || avisos[0].Tipo != AvisoPropuesta {
		t.Fatalf("esperaba un aviso de propuesta, hubo %v", avisos)
	}
	if avisos[0].Renovada {
		t.Fatal("la primera propuesta no debe marcarse como renovada")
	}
}

func TestEnviarPropuestaRenovada(t *testing.T) {
	f := fichaConPropuesta(t)

	// La familia confirmó y la entrevista no se hizo: vuelve a propuesta.
	f, _, err := Aplicar(f, EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}
	f, _, err = Aplicar(f, EvRegistrarEntrevista{Realizada: false, NuevaFechaLimite: fecha(2024, 3, 20)})
	if err != nil {
		t.Fatalf("registrar entrevista no realizada: %v", err)
	}

	f, avisos, err := Aplicar(f, EvEnviarPropuesta{
		Turnos:      turnosDeMarzo()[:1],
		FechaLimite: fecha(2024, 4, 1),
	})
	if err != nil {
		t.Fatalf("reenviar propuesta: %v", err)
	}
	if f.PropuestasEnviadas != 2 {
		t.Fatalf("contador esperado 2, quedó %d", f.PropuestasEnviadas)
	}
	if len(avisos) != 1 || !avisos[0].Renovada {
		t.Fatalf("la segunda propuesta debe avisarse como renovada: %v", avisos)
	}
	if f.TurnoElegido != nil || f.FechaConfirmada != nil {
		t.Fatal("reenviar propuesta debe limpiar la confirmación anterior")
	}
}

func TestEnviarPropuestaDesdeRechazadaFalla(t *testing.T) {
	f, _, err := Aplicar(fichaConPropuesta(t), EvRechazar{Motivo: "cupo completo"})
	if err != nil {
		t.Fatalf("rechazar: %v", err)
	}

	_, _, err = Aplicar(f, EvEnviarPropuesta{Turnos: turnosDeMarzo(), FechaLimite: fecha(2024, 4, 1)})
	var tiErr *TransicionInvalidaError
	if !errors.As(err, &tiErr) {
		t.Fatalf("esperaba TransicionInvalidaError, hubo %v", err)
	}
	if tiErr.Desde != EstadoRechazada {
		t.Fatalf("el error debe llevar el estado actual, llevó %q", tiErr.Desde)
	}
}

func TestEnviarPropuestaCantidadDeTurnos(t *testing.T) {
	cuatro := append(turnosDeMarzo(), turnosDeMarzo()...)

	for _, turnos := range [][]Turno{nil, cuatro} {
		_, _, err := Aplicar(fichaPendiente(), EvEnviarPropuesta{Turnos: turnos, FechaLimite: fecha(2024, 3, 1)})
		if !errors.Is(err, ErrCantidadTurnos) {
			t.Fatalf("con %d turnos esperaba ErrCantidadTurnos, hubo %v", len(turnos), err)
		}
	}
}

func TestConfirmarTurno(t *testing.T) {
	f, avisos, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 1})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}
	if f.Estado != EstadoEntrevistaProgramada {
		t.Fatalf("estado esperado entrevista_programada, quedó %q", f.Estado)
	}
	if f.FechaConfirmada == nil || !f.FechaConfirmada.Equal(fecha(2024, 3, 12)) {
		t.Fatalf("fecha confirmada esperada 2024-03-12, quedó %v", f.FechaConfirmada)
	}
	if f.TurnoElegido == nil || *f.TurnoElegido != 1 {
		t.Fatalf("turno elegido esperado 1, quedó %v", f.TurnoElegido)
	}
	if f.FechaLimite != nil {
		t.Fatal("confirmar debe limpiar la fecha límite")
	}
	if len(avisos) != 1 || avisos[0].Tipo != AvisoConfirmacion {
		t.Fatalf("esperaba aviso de confirmación, hubo %v", avisos)
	}
}

func TestConfirmarTurnoIndiceInvalido(t *testing.T) {
	base := fichaConPropuesta(t)

	for _, indice := range []int{-1, 2, 99} {
		f, avisos, err := Aplicar(base, EvConfirmarTurno{Indice: indice})
		var selErr *SeleccionInvalidaError
		if !errors.As(err, &selErr) {
			t.Fatalf("índice %d: esperaba SeleccionInvalidaError, hubo %v", indice, err)
		}
		if len(avisos) != 0 {
			t.Fatalf("índice %d: no debe haber avisos", indice)
		}
		if !reflect.DeepEqual(f, base) {
			t.Fatalf("índice %d: la ficha no debe cambiar ante una selección inválida", indice)
		}
	}
}

func TestConfirmarTurnoFueraDePropuesta(t *testing.T) {
	_, _, err := Aplicar(fichaPendiente(), EvConfirmarTurno{Indice: 0})
	var tiErr *TransicionInvalidaError
	if !errors.As(err, &tiErr) {
		t.Fatalf("esperaba TransicionInvalidaError, hubo %v", err)
	}
}

func TestRegistrarEntrevista(t *testing.T) {
	f, _, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}

	f, avisos, err := Aplicar(f, EvRegistrarEntrevista{Realizada: true})
	if err != nil {
		t.Fatalf("registrar entrevista: %v", err)
	}
	if f.Estado != EstadoEntrevistaRealizada || !f.EntrevistaRealizada {
		t.Fatalf("estado esperado entrevista_realizada, quedó %q", f.Estado)
	}
	if len(avisos) != 0 {
		t.Fatal("registrar entrevista no genera avisos")
	}
}

func TestRegistrarEntrevistaNoRealizadaReabre(t *testing.T) {
	f, _, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}
	f, _, err = Aplicar(f, EvRegistrarEntrevista{Realizada: true})
	if err != nil {
		t.Fatalf("registrar entrevista: %v", err)
	}

	// Dirección se retracta: la entrevista no se hizo.
	limite := fecha(2024, 3, 25)
	f, _, err = Aplicar(f, EvRegistrarEntrevista{Realizada: false, NuevaFechaLimite: limite})
	if err != nil {
		t.Fatalf("reabrir agenda: %v", err)
	}
	if f.Estado != EstadoPropuestaEnviada {
		t.Fatalf("estado esperado propuesta_enviada, quedó %q", f.Estado)
	}
	if f.FechaLimite == nil || !f.FechaLimite.Equal(limite) {
		t.Fatalf("al reabrir debe rearmarse el plazo, quedó %v", f.FechaLimite)
	}
	if f.EntrevistaRealizada || f.TurnoElegido != nil || f.FechaConfirmada != nil {
		t.Fatal("al reabrir deben limpiarse entrevista y confirmación")
	}
	if len(f.Turnos) == 0 {
		t.Fatal("los turnos propuestos deben conservarse al reabrir")
	}
}

func TestDecidirRequiereEntrevista(t *testing.T) {
	programada, _, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}

	casos := []struct {
		nombre string
		ficha  Ficha
	}{
		{"pendiente", fichaPendiente()},
		{"propuesta_enviada", fichaConPropuesta(t)},
		{"entrevista_programada", programada},
	}
	for _, tc := range casos {
		_, _, err := Aplicar(tc.ficha, EvDecidir{Aceptar: true})
		var tiErr *TransicionInvalidaError
		if !errors.As(err, &tiErr) {
			t.Fatalf("%s: decidir debe fallar con TransicionInvalidaError, hubo %v", tc.nombre, err)
		}
	}
}

func TestDecidirAceptar(t *testing.T) {
	f := fichaEntrevistada(t)

	f, avisos, err := Aplicar(f, EvDecidir{Aceptar: true, Mensaje: "Bienvenidos"})
	if err != nil {
		t.Fatalf("decidir: %v", err)
	}
	if f.Estado != EstadoAceptada {
		t.Fatalf("estado esperado aceptada, quedó %q", f.Estado)
	}
	if f.FechaConfirmada == nil {
		t.Fatal("aceptar conserva la fecha de la entrevista")
	}
	if f.MotivoRechazo != nil {
		t.Fatal("aceptar no lleva motivo de rechazo")
	}
	if len(avisos) != 1 || avisos[0].Tipo != AvisoAceptacion {
		t.Fatalf("esperaba aviso de aceptación, hubo %v", avisos)
	}
}

func TestDecidirRechazar(t *testing.T) {
	f := fichaEntrevistada(t)

	f, avisos, err := Aplicar(f, EvDecidir{Aceptar: false, Mensaje: "cupo excedido"})
	if err != nil {
		t.Fatalf("decidir: %v", err)
	}
	if f.Estado != EstadoRechazada {
		t.Fatalf("estado esperado rechazada, quedó %q", f.Estado)
	}
	if f.MotivoRechazo == nil || *f.MotivoRechazo != "cupo excedido" {
		t.Fatalf("motivo esperado %q, quedó %v", "cupo excedido", f.MotivoRechazo)
	}
	if f.FechaConfirmada != nil || f.FechaLimite != nil || f.TurnoElegido != nil {
		t.Fatal("rechazar limpia los campos de agenda")
	}
	if len(avisos) != 1 || avisos[0].Tipo != AvisoRechazo {
		t.Fatalf("esperaba aviso de rechazo, hubo %v", avisos)
	}
}

func fichaEntrevistada(t *testing.T) Ficha {
	t.Helper()
	f, _, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}
	f, _, err = Aplicar(f, EvRegistrarEntrevista{Realizada: true})
	if err != nil {
		t.Fatalf("registrar entrevista: %v", err)
	}
	return f
}

func TestRechazarDirecto(t *testing.T) {
	for _, tc := range []struct {
		nombre string
		ficha  Ficha
	}{
		{"pendiente", fichaPendiente()},
		{"propuesta_enviada", fichaConPropuesta(t)},
		{"entrevista_realizada", fichaEntrevistada(t)},
	} {
		f, _, err := Aplicar(tc.ficha, EvRechazar{Motivo: "baja voluntaria"})
		if err != nil {
			t.Fatalf("%s: rechazar: %v", tc.nombre, err)
		}
		if f.Estado != EstadoRechazada {
			t.Fatalf("%s: estado esperado rechazada, quedó %q", tc.nombre, f.Estado)
		}
		if f.FechaLimite != nil || f.FechaConfirmada != nil || f.TurnoElegido != nil {
			t.Fatalf("%s: rechazar limpia los campos de agenda", tc.nombre)
		}
	}
}

func TestRechazarDesdeTerminalFalla(t *testing.T) {
	aceptada, _, err := Aplicar(fichaEntrevistada(t), EvDecidir{Aceptar: true})
	if err != nil {
		t.Fatalf("aceptar: %v", err)
	}
	rechazada, _, err := Aplicar(fichaConPropuesta(t), EvRechazar{Motivo: "x"})
	if err != nil {
		t.Fatalf("rechazar: %v", err)
	}

	for _, f := range []Ficha{aceptada, rechazada} {
		_, _, err := Aplicar(f, EvRechazar{Motivo: "y"})
		var tiErr *TransicionInvalidaError
		if !errors.As(err, &tiErr) {
			t.Fatalf("desde %q esperaba TransicionInvalidaError, hubo %v", f.Estado, err)
		}
	}
}

func TestPedirReprogramacionUnaVezPorCiclo(t *testing.T) {
	f, avisos, err := Aplicar(fichaConPropuesta(t), EvPedirReprogramacion{Comentario: "no podemos ese día"})
	if err != nil {
		t.Fatalf("pedir reprogramación: %v", err)
	}
	if !f.ReprogramacionPedida || f.ComentarioReprogramacion == nil {
		t.Fatal("el pedido debe quedar asentado con su comentario")
	}
	if f.Estado != EstadoPropuestaEnviada {
		t.Fatalf("pedir reprogramación no cambia el estado, quedó %q", f.Estado)
	}
	if len(avisos) != 0 {
		t.Fatal("el pedido de reprogramación no genera avisos: lo revisa secretaría")
	}

	_, _, err = Aplicar(f, EvPedirReprogramacion{Comentario: "otro pedido"})
	var tiErr *TransicionInvalidaError
	if !errors.As(err, &tiErr) {
		t.Fatalf("el segundo pedido del ciclo debe fallar, hubo %v", err)
	}

	// Una nueva propuesta abre un ciclo nuevo.
	f, _, err = Aplicar(f, EvEnviarPropuesta{Turnos: turnosDeMarzo(), FechaLimite: fecha(2024, 4, 1)})
	if err != nil {
		t.Fatalf("reenviar propuesta: %v", err)
	}
	if f.ReprogramacionPedida || f.ComentarioReprogramacion != nil {
		t.Fatal("la nueva propuesta debe limpiar el pedido anterior")
	}
	if _, _, err := Aplicar(f, EvPedirReprogramacion{Comentario: "ahora sí"}); err != nil {
		t.Fatalf("el nuevo ciclo admite otro pedido: %v", err)
	}
}

// Invariantes estructurales sobre caminatas aleatorias de eventos válidos.
func TestInvariantesSobreSecuenciasAleatorias(t *testing.T) {
	rng := rand.New(rand.NewSource(20240312))

	eventos := func(paso int) Evento {
		switch rng.Intn(6) {
		case 0:
			return EvEnviarPropuesta{Turnos: turnosDeMarzo(), FechaLimite: fecha(2024, 3, 1+paso%27)}
		case 1:
			return EvConfirmarTurno{Indice: rng.Intn(2)}
		case 2:
			return EvRegistrarEntrevista{Realizada: rng.Intn(2) == 0, NuevaFechaLimite: fecha(2024, 4, 1+paso%27)}
		case 3:
			return EvDecidir{Aceptar: rng.Intn(2) == 0, Mensaje: "m"}
		case 4:
			return EvRechazar{Motivo: "r"}
		default:
			return EvPedirReprogramacion{Comentario: "c"}
		}
	}

	for corrida := 0; corrida < 200; corrida++ {
		f := fichaPendiente()
		for paso := 0; paso < 30; paso++ {
			nueva, _, err := Aplicar(f, eventos(paso))
			if err != nil {
				// Evento ilegal para el estado actual: la ficha no cambió.
				if !reflect.DeepEqual(nueva, f) {
					t.Fatalf("corrida %d paso %d: un error no debe mutar la ficha", corrida, paso)
				}
				continue
			}
			f = nueva

			tieneLimite := f.FechaLimite != nil
			esPropuesta := f.Estado == EstadoPropuestaEnviada
			if tieneLimite != esPropuesta {
				t.Fatalf("corrida %d paso %d: fecha_limite (%v) debe acompañar propuesta_enviada (estado %q)",
					corrida, paso, f.FechaLimite, f.Estado)
			}

			if f.FechaConfirmada != nil {
				switch f.Estado {
				case EstadoEntrevistaProgramada, EstadoEntrevistaRealizada, EstadoAceptada:
				default:
					t.Fatalf("corrida %d paso %d: fecha confirmada en estado %q", corrida, paso, f.Estado)
				}
			}

			if f.MotivoRechazo != nil && f.Estado != EstadoRechazada {
				t.Fatalf("corrida %d paso %d: motivo de rechazo en estado %q", corrida, paso, f.Estado)
			}

			if (f.Estado == EstadoPropuestaEnviada || f.Estado == EstadoEntrevistaProgramada) && len(f.Turnos) == 0 {
				t.Fatalf("corrida %d paso %d: estado %q sin turnos propuestos", corrida, paso, f.Estado)
			}
		}
	}
}

// Camino completo: alta → propuesta → confirmación → entrevista → decisión.
func TestEscenarioCompleto(t *testing.T) {
	f := fichaPendiente()

	f, _, err := Aplicar(f, EvEnviarPropuesta{Turnos: turnosDeMarzo(), FechaLimite: fecha(2024, 3, 1)})
	if err != nil {
		t.Fatalf("propuesta: %v", err)
	}
	f, _, err = Aplicar(f, EvConfirmarTurno{Indice: 1})
	if err != nil {
		t.Fatalf("confirmación: %v", err)
	}
	f, _, err = Aplicar(f, EvRegistrarEntrevista{Realizada: true})
	if err != nil {
		t.Fatalf("entrevista: %v", err)
	}
	f, _, err = Aplicar(f, EvDecidir{Aceptar: false, Mensaje: "cupo excedido"})
	if err != nil {
		t.Fatalf("decisión: %v", err)
	}

	if f.Estado != EstadoRechazada {
		t.Fatalf("estado final esperado rechazada, quedó %q", f.Estado)
	}
	if f.MotivoRechazo == nil || *f.MotivoRechazo != "cupo excedido" {
		t.Fatalf("motivo final esperado %q, quedó %v", "cupo excedido", f.MotivoRechazo)
	}
}
