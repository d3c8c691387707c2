package service

import "testing"

func TestAutorizarEmail(t *testing.T) {
	casos := []struct {
		nombre   string
		contacto string
		provisto string
		quiero   bool
	}{
		{"sin email provisto pasa", "familia@example.com", "", true},
		{"espacios cuentan como vacío", "familia@example.com", "   ", true},
		{"coincidencia exacta", "familia@example.com", "familia@example.com", true},
		{"case-insensitive", "familia@example.com", "FAMILIA@Example.COM", true},
		{"espacios alrededor", "familia@example.com", "  familia@example.com  ", true},
		{"otro email", "familia@example.com", "otra@example.com", false},
	}

	for _, tc := range casos {
		if got := autorizarEmail(tc.contacto, tc.provisto); got != tc.quiero {
			t.Errorf("%s: autorizarEmail(%q, %q) = %v, quiero %v", tc.nombre, tc.contacto, tc.provisto, got, tc.quiero)
		}
	}
}

func TestArmarVistaConPropuestaAbierta(t *testing.T) {
	f := fichaConPropuesta(t)
	nota := "Quedan vacantes"

	v := armarVista(f, "Sofía Pérez", &nota, nil)

	if v.Aspirante != "Sofía Pérez" || v.Estado != "propuesta_enviada" {
		t.Fatalf("cabecera de la vista: %+v", v)
	}
	if v.Disponibilidad != "Quedan vacantes" {
		t.Fatalf("disponibilidad: %q", v.Disponibilidad)
	}
	if v.YaRespondida {
		t.Fatal("con propuesta abierta la familia todavía puede responder")
	}
	if len(v.Turnos) != 2 || v.Turnos[0].Indice != 0 || v.Turnos[1].Indice != 1 {
		t.Fatalf("turnos de la vista: %+v", v.Turnos)
	}
	if v.Turnos[1].Fecha != "2024-03-12" || v.Turnos[1].Aclaraciones != "Traer DNI" {
		t.Fatalf("segundo turno: %+v", v.Turnos[1])
	}
	if v.FechaLimite == nil || *v.FechaLimite != "2024-03-01" {
		t.Fatalf("fecha límite de la vista: %v", v.FechaLimite)
	}
	if v.FechaConfirmada != nil {
		t.Fatal("sin confirmación no hay fecha confirmada")
	}
}

func TestArmarVistaYaRespondida(t *testing.T) {
	// Reprogramación pedida: sigue en propuesta_enviada pero ya respondió.
	conPedido, _, err := Aplicar(fichaConPropuesta(t), EvPedirReprogramacion{Comentario: "no podemos"})
	if err != nil {
		t.Fatalf("pedir reprogramación: %v", err)
	}

	confirmada, _, err := Aplicar(fichaConPropuesta(t), EvConfirmarTurno{Indice: 0})
	if err != nil {
		t.Fatalf("confirmar turno: %v", err)
	}

	casos := []struct {
		nombre string
		ficha  Ficha
	}{
		{"pendiente", fichaPendiente()},
		{"reprogramación pedida", conPedido},
		{"entrevista programada", confirmada},
	}
	for _, tc := range casos {
		v := armarVista(tc.ficha, "Sofía Pérez", nil, nil)
		if !v.YaRespondida {
			t.Errorf("%s: la vista debe marcar ya_respondida", tc.nombre)
		}
	}

	v := armarVista(conPedido, "Sofía Pérez", nil, nil)
	if !v.ReprogramacionPedida {
		t.Fatal("el pedido de reprogramación debe verse en la vista")
	}

	v = armarVista(confirmada, "Sofía Pérez", nil, nil)
	if v.FechaConfirmada == nil || *v.FechaConfirmada != "2024-03-10" {
		t.Fatalf("fecha confirmada de la vista: %v", v.FechaConfirmada)
	}
	if v.FechaLimite != nil {
		t.Fatal("con turno confirmado no hay fecha límite")
	}
}

func TestArmarVistaSinDatosDeDisponibilidad(t *testing.T) {
	v := armarVista(fichaPendiente(), "Sofía Pérez", nil, nil)
	if v.Disponibilidad != "Pendiente" {
		t.Fatalf("disponibilidad por defecto: %q", v.Disponibilidad)
	}
	if v.Turnos == nil {
		t.Fatal("la vista serializa turnos como lista vacía, no null")
	}
}
