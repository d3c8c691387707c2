package dto

import (
	"testing"
	"time"
)

func TestPropuestaRequestAEntrada(t *testing.T) {
	req := PropuestaRequest{
		Turnos: []TurnoRequest{
			{Fecha: "2024-03-10", HoraDesde: " 09:00 ", HoraHasta: "10:00"},
			{Fecha: "2024-03-12", HoraDesde: "14:00", HoraHasta: "15:00", Aclaraciones: "  Traer DNI  "},
		},
	}
	req.Normalize()

	entrada, err := req.AEntrada()
	if err != nil {
		t.Fatalf("convertir propuesta: %v", err)
	}
	if len(entrada.Turnos) != 2 {
		t.Fatalf("esperaba 2 turnos, hubo %d", len(entrada.Turnos))
	}
	quiero := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !entrada.Turnos[0].Fecha.Equal(quiero) {
		t.Fatalf("fecha del primer turno: %v", entrada.Turnos[0].Fecha)
	}
	if entrada.Turnos[0].HoraDesde != "09:00" {
		t.Fatalf("Normalize debe recortar horarios: %q", entrada.Turnos[0].HoraDesde)
	}
	if entrada.Turnos[1].Aclaraciones != "Traer DNI" {
		t.Fatalf("Normalize debe recortar aclaraciones: %q", entrada.Turnos[1].Aclaraciones)
	}
}

func TestPropuestaRequestAEntradaFechaInvalida(t *testing.T) {
	req := PropuestaRequest{
		Turnos: []TurnoRequest{{Fecha: "10/03/2024", HoraDesde: "09:00", HoraHasta: "10:00"}},
	}
	if _, err := req.AEntrada(); err == nil {
		t.Fatal("una fecha fuera de formato debe rechazarse")
	}
}
