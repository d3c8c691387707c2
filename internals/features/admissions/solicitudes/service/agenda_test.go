package service

import (
	"testing"
	"time"
)

func TestFechaLimiteSiempreQuinceDias(t *testing.T) {
	casos := []struct {
		nombre string
		hoy    time.Time
		quiero time.Time
	}{
		{
			nombre: "medianoche",
			hoy:    fecha(2024, 3, 1),
			quiero: fecha(2024, 3, 16),
		},
		{
			nombre: "con hora y zona",
			hoy:    time.Date(2024, 3, 1, 23, 59, 58, 0, time.FixedZone("ART", -3*3600)),
			quiero: fecha(2024, 3, 16),
		},
		{
			nombre: "cruza fin de mes",
			hoy:    fecha(2024, 3, 25),
			quiero: fecha(2024, 4, 9),
		},
		{
			nombre: "año bisiesto",
			hoy:    fecha(2024, 2, 20),
			quiero: fecha(2024, 3, 6),
		},
	}

	for _, tc := range casos {
		if got := FechaLimite(tc.hoy); !got.Equal(tc.quiero) {
			t.Errorf("%s: FechaLimite(%v) = %v, quiero %v", tc.nombre, tc.hoy, got, tc.quiero)
		}
	}
}

func TestVencida(t *testing.T) {
	limite := fecha(2024, 3, 16)

	casos := []struct {
		nombre string
		limite *time.Time
		hoy    time.Time
		quiero bool
	}{
		{"sin limite", nil, fecha(2024, 4, 1), false},
		{"antes del vencimiento", &limite, fecha(2024, 3, 15), false},
		{"el mismo día todavía se responde", &limite, fecha(2024, 3, 16), false},
		{"el mismo día a última hora", &limite, time.Date(2024, 3, 16, 23, 0, 0, 0, time.UTC), false},
		{"al día siguiente", &limite, fecha(2024, 3, 17), true},
	}

	for _, tc := range casos {
		if got := Vencida(tc.limite, tc.hoy); got != tc.quiero {
			t.Errorf("%s: Vencida = %v, quiero %v", tc.nombre, got, tc.quiero)
		}
	}
}

func TestBuscarTurnoPorFecha(t *testing.T) {
	turnos := turnosDeMarzo()

	// La igualdad es por fecha civil: la hora del parámetro no importa.
	idx, ok := BuscarTurnoPorFecha(turnos, time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC))
	if !ok || idx != 1 {
		t.Fatalf("esperaba turno 1, hubo (%d, %v)", idx, ok)
	}

	if idx, ok := BuscarTurnoPorFecha(turnos, fecha(2024, 3, 11)); ok {
		t.Fatalf("no hay turno el 11/03, hubo (%d, %v)", idx, ok)
	}

	if _, ok := BuscarTurnoPorFecha(nil, fecha(2024, 3, 10)); ok {
		t.Fatal("sin turnos propuestos no puede haber coincidencia")
	}
}

func TestDescribirDisponibilidad(t *testing.T) {
	nota := "Quedan 2 vacantes en sala de 4"
	enBlanco := "   "
	si, no := true, false

	casos := []struct {
		nombre string
		nota   *string
		cupo   *bool
		quiero string
	}{
		{"nota explícita manda", &nota, &no, "Quedan 2 vacantes en sala de 4"},
		{"nota en blanco cae al cupo", &enBlanco, &si, "Con cupo disponible"},
		{"cupo afirmativo", nil, &si, "Con cupo disponible"},
		{"cupo negativo", nil, &no, "Sin cupo disponible"},
		{"sin datos", nil, nil, "Pendiente"},
	}

	for _, tc := range casos {
		if got := DescribirDisponibilidad(tc.nota, tc.cupo); got != tc.quiero {
			t.Errorf("%s: %q, quiero %q", tc.nombre, got, tc.quiero)
		}
	}
}
