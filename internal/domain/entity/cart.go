package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea del carrito: referencia al producto, cantidad y el precio
// capturado en el momento de agregar (snapshot; cambios posteriores en el
// catálogo no afectan líneas existentes).
type CartItem struct {
	ItemID    string // identificador de línea (uuid)
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	AddedAt   time.Time
}

// Cart carrito de compras de un usuario (uno por usuario).
// Invariante: Total == Σ(Quantity × Price) después de cada mutación.
type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	Total     decimal.Decimal
	UpdatedAt time.Time
}

// EmptyCart devuelve un carrito vacío con total cero para un usuario sin
// documento de carrito: "sin carrito" y "carrito vacío" son equivalentes.
func EmptyCart(userID string) *Cart {
	return &Cart{
		UserID: userID,
		Items:  []CartItem{},
		Total:  decimal.Zero,
	}
}

// RecalculateTotal recalcula el total desde cero sobre las líneas actuales.
// Nunca se ajusta incrementalmente: así no hay deriva acumulada.
func (c *Cart) RecalculateTotal() {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	c.Total = total
}

// FindItem busca una línea por su ItemID; devuelve el índice o -1.
func (c *Cart) FindItem(itemID string) int {
	for i, it := range c.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

// FindProduct busca una línea por producto; devuelve el índice o -1.
func (c *Cart) FindProduct(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
