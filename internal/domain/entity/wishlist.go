package entity

import "time"

// WishlistItem entrada de la lista de deseos. A diferencia del carrito no
// captura precio ni cantidad: es solo la referencia al producto.
type WishlistItem struct {
	ProductID string
	AddedAt   time.Time
}

// Wishlist lista de deseos de un usuario (una por usuario).
// Invariante: un producto aparece a lo sumo una vez.
type Wishlist struct {
	ID        string
	UserID    string
	Items     []WishlistItem
	UpdatedAt time.Time
}

// EmptyWishlist lista vacía para un usuario sin documento: "sin lista" y
// "lista vacía" son equivalentes.
func EmptyWishlist(userID string) *Wishlist {
	return &Wishlist{
		UserID: userID,
		Items:  []WishlistItem{},
	}
}

// Contains indica si el producto ya está en la lista.
func (w *Wishlist) Contains(productID string) bool {
	for _, it := range w.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
