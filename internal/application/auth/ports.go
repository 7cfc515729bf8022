package auth

import "context"

// Mailer es el canal de entrega de correo que consume el caso de uso. El
// caso de uso solo depende de que el envío tenga éxito o falle: un fallo
// durante registro o forgot-password revierte los campos de token recién
// emitidos para no dejar estados pendientes inalcanzables.
type Mailer interface {
	SendHTMLEmail(ctx context.Context, recipient, subject, htmlBody string) error
}
