package mail_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artesanica/artesanica-api/internal/infrastructure/mail"
	"github.com/artesanica/artesanica-api/pkg/config"
)

// Con el contexto ya cancelado el envío no se intenta: retorna antes de
// abrir la conexión SMTP, sin entrega parcial que pueda competir con el
// rollback de tokens del llamador.
func TestSendHTMLEmail_ContextoCancelado(t *testing.T) {
	m := mail.NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 2525})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendHTMLEmail(ctx, "ana@example.com", "Hola", "<p>hola</p>")
	assert.ErrorIs(t, err, context.Canceled)
}
