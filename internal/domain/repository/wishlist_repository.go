package repository

import (
	"context"

	"github.com/artesanica/artesanica-api/internal/domain/entity"
)

// WishlistRepository puerto de persistencia de la lista de deseos.
// GetByUser devuelve (nil, nil) si el usuario no tiene lista.
type WishlistRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Wishlist, error)
	Save(ctx context.Context, wishlist *entity.Wishlist) error
	DeleteByUser(ctx context.Context, userID string) error
}
