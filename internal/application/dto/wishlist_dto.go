package dto

import "time"

// WishlistItemResponse entrada de la lista de deseos serializada.
type WishlistItemResponse struct {
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// WishlistResponse lista de deseos serializada. Usuario sin lista recibe
// items vacíos.
type WishlistResponse struct {
	Items []WishlistItemResponse `json:"items"`
}
