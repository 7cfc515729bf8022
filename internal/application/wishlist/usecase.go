package wishlist

import (
	"context"
	"time"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

// WishlistUseCase casos de uso de la lista de deseos: conjunto de referencias
// a producto sin cantidad ni precio. Documento creado perezosamente en el
// primer add y descartado al quedar vacío (misma política que el carrito).
type WishlistUseCase struct {
	repo repository.WishlistRepository
}

// NewWishlistUseCase construye el caso de uso.
func NewWishlistUseCase(repo repository.WishlistRepository) *WishlistUseCase {
	return &WishlistUseCase{repo: repo}
}

// Get devuelve la lista del usuario; sin documento devuelve una lista vacía.
func (uc *WishlistUseCase) Get(ctx context.Context, userID string) (*dto.WishlistResponse, error) {
	wl, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wl == nil {
		wl = entity.EmptyWishlist(userID)
	}
	return toWishlistResponse(wl), nil
}

// Add agrega un producto. Si ya está presente devuelve ErrDuplicate: un
// rechazo no fatal, la lista queda intacta.
func (uc *WishlistUseCase) Add(ctx context.Context, userID, productID string) (*dto.WishlistResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	wl, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wl == nil {
		wl = entity.EmptyWishlist(userID)
	}
	if wl.Contains(productID) {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	wl.Items = append(wl.Items, entity.WishlistItem{ProductID: productID, AddedAt: now})
	wl.UpdatedAt = now
	if err := uc.repo.Save(ctx, wl); err != nil {
		return nil, err
	}
	return toWishlistResponse(wl), nil
}

// Remove quita un producto de la lista; si la lista queda vacía el documento
// se descarta.
func (uc *WishlistUseCase) Remove(ctx context.Context, userID, productID string) (*dto.WishlistResponse, error) {
	wl, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wl == nil {
		return nil, domain.ErrNotFound
	}
	idx := -1
	for i, it := range wl.Items {
		if it.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	wl.Items = append(wl.Items[:idx], wl.Items[idx+1:]...)

	if len(wl.Items) == 0 {
		if err := uc.repo.DeleteByUser(ctx, userID); err != nil {
			return nil, err
		}
		return toWishlistResponse(entity.EmptyWishlist(userID)), nil
	}

	wl.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, wl); err != nil {
		return nil, err
	}
	return toWishlistResponse(wl), nil
}

func toWishlistResponse(w *entity.Wishlist) *dto.WishlistResponse {
	items := make([]dto.WishlistItemResponse, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, dto.WishlistItemResponse{ProductID: it.ProductID, AddedAt: it.AddedAt})
	}
	return &dto.WishlistResponse{Items: items}
}
