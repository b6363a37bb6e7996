package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/probaar-api/internal/application/ports"
	"github.com/jhoicas/probaar-api/pkg/config"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementación de ports.Mailer sobre SMTP (gomail).
// Sin SMTP_HOST configurado los mensajes solo se registran en el log.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	log  zerolog.Logger
	send func(msgs ...*gomail.Message) error
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log zerolog.Logger) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg, log: log}
	if cfg.Enabled() {
		dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		m.send = dialer.DialAndSend
	}
	return m
}

// Send entrega el mensaje a todos los destinatarios en un único envío.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	if len(msg.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.send == nil {
		m.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("smtp deshabilitado: correo no enviado")
		return nil
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.send(gm); err != nil {
		return fmt.Errorf("smtp send %q: %w", msg.Subject, err)
	}
	m.log.Debug().Strs("to", msg.To).Str("subject", msg.Subject).Msg("correo enviado")
	return nil
}
