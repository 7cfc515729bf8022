package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo del catálogo. El carrito guarda su propio snapshot de
// Price al agregar; CountInStock se consulta antes de agregar al carrito.
type Product struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Price        decimal.Decimal
	CountInStock int
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
