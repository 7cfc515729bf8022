package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

// CartUseCase casos de uso del carrito. El total se recalcula desde cero en
// cada mutación y se persiste junto con las líneas en un solo save por
// documento. El documento se crea perezosamente en el primer add y se elimina
// al quedar vacío (delete-on-empty, misma política que la wishlist).
type CartUseCase struct {
	repo repository.CartRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(repo repository.CartRepository) *CartUseCase {
	return &CartUseCase{repo: repo}
}

// Get devuelve el carrito del usuario. Sin documento devuelve un carrito
// vacío con total cero, nunca un error: "sin carrito" y "carrito vacío" son
// el mismo estado observable.
func (uc *CartUseCase) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = entity.EmptyCart(userID)
	}
	return toCartResponse(cart), nil
}

// AddItem agrega un producto al carrito. Si ya existe una línea para el
// producto, incrementa su cantidad (no reemplaza); si no, agrega una línea
// nueva con el precio capturado en este momento (snapshot: lecturas
// posteriores no vuelven a consultar el catálogo). La verificación de stock
// es responsabilidad del llamador.
func (uc *CartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int, unitPrice decimal.Decimal) (*dto.CartResponse, error) {
	if productID == "" || quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = entity.EmptyCart(userID)
	}

	now := time.Now()
	if i := cart.FindProduct(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, entity.CartItem{
			ItemID:    uuid.New().String(),
			ProductID: productID,
			Quantity:  quantity,
			Price:     unitPrice,
			AddedAt:   now,
		})
	}
	cart.RecalculateTotal()
	cart.UpdatedAt = now
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// UpdateItemQuantity fija la cantidad absoluta de una línea existente (no es
// un delta) y recalcula el total.
func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	i := cart.FindItem(itemID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	cart.Items[i].Quantity = quantity
	cart.RecalculateTotal()
	cart.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// RemoveItem elimina una línea del carrito. Si el carrito queda vacío, el
// documento completo se descarta en lugar de dejar un registro con total
// cero.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartResponse, error) {
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	i := cart.FindItem(itemID)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if len(cart.Items) == 0 {
		if err := uc.repo.DeleteByUser(ctx, userID); err != nil {
			return nil, err
		}
		return toCartResponse(entity.EmptyCart(userID)), nil
	}

	cart.RecalculateTotal()
	cart.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Clear vacía el carrito descartando el documento. Vaciar un carrito
// inexistente no es un error.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) (*dto.CartResponse, error) {
	if err := uc.repo.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}
	return toCartResponse(entity.EmptyCart(userID)), nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{
			ItemID:    it.ItemID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			AddedAt:   it.AddedAt,
		})
	}
	return &dto.CartResponse{Items: items, Total: c.Total}
}
