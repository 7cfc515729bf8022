package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; el texto interno de la base de datos o del
// transporte de correo nunca llega a la respuesta.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrInvalidCredentials    = errors.New("credenciales inválidas")
	ErrEmailNotVerified      = errors.New("correo electrónico no verificado")
	ErrInvalidOrExpiredToken = errors.New("token inválido o expirado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrDeliveryFailed        = errors.New("no se pudo enviar el correo")
)
