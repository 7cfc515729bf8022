package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/artesanica/artesanica-api/pkg/config"
)

// SMTPMailer implementa auth.Mailer sobre SMTP vía gomail. El envío es
// síncrono: el caso de uso necesita saber si falló para revertir los campos
// de token recién emitidos.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPMailer construye el transporte de correo desde la configuración.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// SendHTMLEmail envía un correo HTML. El envío es estrictamente síncrono: el
// error devuelto refleja lo que ocurrió con la entrega, así el rollback de
// tokens en el caso de uso nunca compite con un correo que sigue en vuelo.
// El contexto solo se consulta antes de marcar.
func (m *SMTPMailer) SendHTMLEmail(ctx context.Context, recipient, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
