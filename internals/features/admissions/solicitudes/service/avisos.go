// file: internals/features/admissions/solicitudes/service/avisos.go
package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/santymrk2/school-system-sub001/internals/helpers/mailer"
)

// DestinatarioAviso: a quién y a nombre de quién va el mail.
type DestinatarioAviso struct {
	Email     string
	Aspirante string // nombre completo para el cuerpo
}

// EnviarAvisos despacha los avisos de una transición ya confirmada.
// El envío es best-effort: un fallo se loguea y no se propaga, el estado
// de la solicitud ya quedó persistido.
func EnviarAvisos(m mailer.Mailer, dest DestinatarioAviso, avisos []Aviso) {
	if dest.Email == "" {
		if len(avisos) > 0 {
			log.Printf("[AVISO] sin email de contacto para %q, %d aviso(s) omitido(s)", dest.Aspirante, len(avisos))
		}
		return
	}
	for _, a := range avisos {
		asunto, cuerpo := RedactarAviso(dest.Aspirante, a)
		if err := m.Enviar(dest.Email, asunto, cuerpo); err != nil {
			log.Printf("[AVISO] fallo de envío para=%s tipo=%s err=%v", dest.Email, a.Tipo, err)
		}
	}
}

// RedactarAviso arma asunto y cuerpo según el tipo de aviso.
func RedactarAviso(aspirante string, a Aviso) (asunto, cuerpo string) {
	switch a.Tipo {
	case AvisoPropuesta:
		if a.Renovada {
			asunto = "Nueva propuesta de entrevista de admisión"
		} else {
			asunto = "Propuesta de entrevista de admisión"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Estimada familia de %s:\n\n", aspirante)
		if a.Renovada {
			b.WriteString("Le acercamos una nueva propuesta de horarios para la entrevista de admisión:\n\n")
		} else {
			b.WriteString("Le proponemos los siguientes horarios para la entrevista de admisión:\n\n")
		}
		for i, t := range a.Turnos {
			fmt.Fprintf(&b, "  %d) %s de %s a %s", i+1, t.Fecha.Format("02/01/2006"), t.HoraDesde, t.HoraHasta)
			if t.Aclaraciones != "" {
				fmt.Fprintf(&b, " (%s)", t.Aclaraciones)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\nPor favor responda desde el portal antes del %s.\n", a.FechaLimite.Format("02/01/2006"))
		b.WriteString("\nSaludos,\nEquipo de Admisión")
		cuerpo = b.String()

	case AvisoConfirmacion:
		asunto = "Entrevista de admisión confirmada"
		cuerpo = fmt.Sprintf(
			"Estimada familia de %s:\n\nLa entrevista de admisión quedó confirmada para el %s de %s a %s.\n\nSaludos,\nEquipo de Admisión",
			aspirante, a.Turno.Fecha.Format("02/01/2006"), a.Turno.HoraDesde, a.Turno.HoraHasta,
		)

	case AvisoAceptacion:
		asunto = "Resultado de la admisión: aceptada"
		cuerpo = fmt.Sprintf("Estimada familia de %s:\n\nNos alegra informarles que la solicitud de admisión fue aceptada.\n", aspirante)
		if strings.TrimSpace(a.Mensaje) != "" {
			cuerpo += "\n" + strings.TrimSpace(a.Mensaje) + "\n"
		}
		cuerpo += "\nSaludos,\nEquipo de Admisión"

	case AvisoRechazo:
		asunto = "Resultado de la admisión"
		cuerpo = fmt.Sprintf("Estimada familia de %s:\n\nLamentamos informarles que la solicitud de admisión no fue aceptada.\n", aspirante)
		if strings.TrimSpace(a.Motivo) != "" {
			cuerpo += fmt.Sprintf("\nMotivo: %s\n", strings.TrimSpace(a.Motivo))
		}
		cuerpo += "\nSaludos,\nEquipo de Admisión"
	}
	return asunto, cuerpo
}
