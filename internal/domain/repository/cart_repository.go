package repository

import (
	"context"

	"github.com/artesanica/artesanica-api/internal/domain/entity"
)

// CartRepository puerto de persistencia del carrito (un documento por usuario).
// GetByUser devuelve (nil, nil) si el usuario no tiene carrito.
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// Save inserta o reemplaza el documento completo del carrito (upsert por
	// usuario). La atomicidad es por documento; escrituras concurrentes del
	// mismo carrito son last-writer-wins.
	Save(ctx context.Context, cart *entity.Cart) error
	// DeleteByUser elimina el documento (política delete-on-empty).
	DeleteByUser(ctx context.Context, userID string) error
}
