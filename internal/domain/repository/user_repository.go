package repository

import (
	"context"

	"github.com/artesanica/artesanica-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay documento.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByVerificationTokenHash busca por hash del token de verificación de
	// correo; la comparación de expiración se hace en el caso de uso.
	GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)
	// GetByResetTokenHash busca por hash del token de restablecimiento.
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
