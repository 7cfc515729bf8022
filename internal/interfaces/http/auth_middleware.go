package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
	"github.com/artesanica/artesanica-api/pkg/jwt"
)

// Locals keys para el usuario resuelto en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// SessionCookie nombre de la cookie HTTP-only que transporta el token de
// sesión como alternativa al header Authorization.
const SessionCookie = "token"

// AuthMiddleware valida el token de sesión y resuelve la identidad del
// llamador. La cadena falla cerrada: sin token, firma inválida, token
// vencido, usuario inexistente o correo sin verificar → 401 y la petición no
// avanza. El token se toma del header `Authorization: Bearer` y, en su
// defecto, de la cookie de sesión (en ese orden de preferencia).
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "no autorizado para acceder a esta ruta"})
		}

		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		// Identidad siempre contra la DB: un token firmado de un usuario
		// eliminado o aún sin verificar no abre sesión.
		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado para acceder a esta ruta"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado con este token"})
		}
		if !user.IsEmailVerified {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "EMAIL_NOT_VERIFIED", Message: "por favor verifica tu correo electrónico"})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalRole). Rol fuera del conjunto → 403.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "no autorizado para acceder a esta ruta"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + role + " no está autorizado para acceder a esta ruta"})
	}
}

// extractToken Bearer primero, cookie después. Un header presente pero
// malformado no bloquea la cookie: se cae al siguiente canal.
func extractToken(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(SessionCookie)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
