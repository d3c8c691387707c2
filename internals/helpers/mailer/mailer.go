// file: internals/helpers/mailer/mailer.go
package mailer

import (
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/santymrk2/school-system-sub001/internals/configs"
)

// Mailer es la capacidad de envío que consume el flujo de admisión.
// Un envío fallido NUNCA es un error de negocio: el caller loguea y sigue.
type Mailer interface {
	Enviar(para, asunto, cuerpo string) error
}

// =======================
// SMTP (gomail)
// =======================

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Enviar(para, asunto, cuerpo string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", para)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/plain", cuerpo)
	return m.dialer.DialAndSend(msg)
}

// =======================
// Fallback de desarrollo
// =======================

// LogMailer se usa cuando SMTP_HOST no está configurado:
// deja el aviso en el log y listo.
type LogMailer struct{}

func (LogMailer) Enviar(para, asunto, cuerpo string) error {
	log.Printf("[AVISO] (sin SMTP) para=%s asunto=%q\n%s", para, asunto, cuerpo)
	return nil
}

// NewFromEnv elige la implementación según configuración.
func NewFromEnv() Mailer {
	if configs.SMTPHost == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(
		configs.SMTPHost,
		configs.SMTPPort,
		configs.SMTPUser,
		configs.SMTPPass,
		configs.SMTPFrom,
	)
}
