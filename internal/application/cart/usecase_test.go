package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artesanica/artesanica-api/internal/application/cart"
	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeCartRepo repositorio en memoria: un documento por usuario, guardado por
// copia para simular el upsert por documento completo.
type fakeCartRepo struct {
	carts map[string]entity.Cart // por userID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]entity.Cart)}
}

func (r *fakeCartRepo) GetByUser(_ context.Context, userID string) (*entity.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	out := c
	out.Items = append([]entity.CartItem(nil), c.Items...)
	return &out, nil
}

func (r *fakeCartRepo) Save(_ context.Context, c *entity.Cart) error {
	stored := *c
	stored.Items = append([]entity.CartItem(nil), c.Items...)
	r.carts[c.UserID] = stored
	return nil
}

func (r *fakeCartRepo) DeleteByUser(_ context.Context, userID string) error {
	delete(r.carts, userID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addItem(t *testing.T, uc *cart.CartUseCase, productID string, qty int, unitPrice string) *dto.CartResponse {
	t.Helper()
	resp, err := uc.AddItem(context.Background(), testUserID, productID, qty, price(unitPrice))
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_SinCarritoDevuelveVacio(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	resp, err := uc.Get(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero(), "el total de un carrito inexistente es cero")
}

func TestAddItem_CreaCarritoPerezosamente(t *testing.T) {
	repo := newFakeCartRepo()
	uc := cart.NewCartUseCase(repo)

	resp := addItem(t, uc, "prod-1", 2, "150.00")

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "prod-1", resp.Items[0].ProductID)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.NotEmpty(t, resp.Items[0].ItemID, "cada línea recibe un identificador propio")
	assert.True(t, resp.Total.Equal(price("300.00")), "total = 2 x 150.00, obtuvo %s", resp.Total)

	_, ok := repo.carts[testUserID]
	assert.True(t, ok, "el documento se crea en el primer add")
}

func TestAddItem_MismoProductoAcumulaCantidad(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	addItem(t, uc, "prod-1", 2, "10.00")
	resp := addItem(t, uc, "prod-1", 3, "10.00")

	require.Len(t, resp.Items, 1, "el mismo producto no genera una segunda línea")
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.True(t, resp.Total.Equal(price("50.00")), "total = 5 x 10.00, obtuvo %s", resp.Total)
}

func TestAddItem_PrecioEsSnapshot(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	addItem(t, uc, "prod-1", 1, "100.00")
	// El catálogo subió de precio; la línea existente conserva su snapshot.
	resp := addItem(t, uc, "prod-1", 1, "999.00")

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Price.Equal(price("100.00")),
		"la línea conserva el precio del momento del primer add")
	assert.True(t, resp.Total.Equal(price("200.00")))
}

func TestAddItem_EntradaInvalida(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	_, err := uc.AddItem(context.Background(), testUserID, "", 1, price("10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddItem(context.Background(), testUserID, "prod-1", 0, price("10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemQuantity_FijaCantidadAbsoluta(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	resp := addItem(t, uc, "prod-1", 5, "20.00")
	itemID := resp.Items[0].ItemID

	resp, err := uc.UpdateItemQuantity(context.Background(), testUserID, itemID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Items[0].Quantity, "la cantidad es absoluta, no un delta")
	assert.True(t, resp.Total.Equal(price("40.00")), "total = 2 x 20.00, obtuvo %s", resp.Total)
}

func TestUpdateItemQuantity_Errores(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	// Cantidad menor a 1 se rechaza antes de tocar el repositorio.
	_, err := uc.UpdateItemQuantity(context.Background(), testUserID, "item-x", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin carrito.
	_, err = uc.UpdateItemQuantity(context.Background(), testUserID, "item-x", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Con carrito pero línea inexistente.
	addItem(t, uc, "prod-1", 1, "10.00")
	_, err = uc.UpdateItemQuantity(context.Background(), testUserID, "item-x", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_RecalculaTotal(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	addItem(t, uc, "prod-1", 2, "10.00")
	resp := addItem(t, uc, "prod-2", 1, "35.50")
	require.Len(t, resp.Items, 2)
	require.True(t, resp.Total.Equal(price("55.50")))

	var itemProd2 string
	for _, it := range resp.Items {
		if it.ProductID == "prod-2" {
			itemProd2 = it.ItemID
		}
	}
	require.NotEmpty(t, itemProd2)

	resp, err := uc.RemoveItem(context.Background(), testUserID, itemProd2)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Total.Equal(price("20.00")), "obtuvo %s", resp.Total)
}

func TestRemoveItem_UltimaLineaDescartaDocumento(t *testing.T) {
	repo := newFakeCartRepo()
	uc := cart.NewCartUseCase(repo)

	resp := addItem(t, uc, "prod-1", 1, "10.00")
	itemID := resp.Items[0].ItemID

	resp, err := uc.RemoveItem(context.Background(), testUserID, itemID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())

	_, ok := repo.carts[testUserID]
	assert.False(t, ok, "el carrito vacío no deja documento residual")
}

func TestRemoveItem_LineaInexistente(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	_, err := uc.RemoveItem(context.Background(), testUserID, "item-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClear_EsIdempotente(t *testing.T) {
	repo := newFakeCartRepo()
	uc := cart.NewCartUseCase(repo)

	addItem(t, uc, "prod-1", 3, "10.00")

	resp, err := uc.Clear(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())

	// Vaciar un carrito que no existe tampoco es un error.
	_, err = uc.Clear(context.Background(), testUserID)
	assert.NoError(t, err)
}

func TestTotal_InvarianteTrasSecuenciaDeMutaciones(t *testing.T) {
	uc := cart.NewCartUseCase(newFakeCartRepo())

	addItem(t, uc, "prod-1", 2, "125.50") // 251.00
	addItem(t, uc, "prod-2", 1, "80.00")  // 331.00
	resp := addItem(t, uc, "prod-1", 1, "125.50")
	require.True(t, resp.Total.Equal(price("456.50")), "obtuvo %s", resp.Total)

	var itemProd1 string
	for _, it := range resp.Items {
		if it.ProductID == "prod-1" {
			itemProd1 = it.ItemID
		}
	}
	resp, err := uc.UpdateItemQuantity(context.Background(), testUserID, itemProd1, 1)
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(price("205.50")), "total = 125.50 + 80.00, obtuvo %s", resp.Total)
}
