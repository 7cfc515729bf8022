package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/application/wishlist"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

// WishlistHandler maneja la lista de deseos del usuario autenticado.
type WishlistHandler struct {
	uc       *wishlist.WishlistUseCase
	products repository.ProductRepository
}

// NewWishlistHandler construye el handler de la lista de deseos.
func NewWishlistHandler(uc *wishlist.WishlistUseCase, products repository.ProductRepository) *WishlistHandler {
	return &WishlistHandler{uc: uc, products: products}
}

// Get godoc
// @Summary      Obtener la lista de deseos del usuario
// @Tags         wishlist
// @Produce      json
// @Success      200  {object}  dto.WishlistResponse
// @Router       /api/v1/wishlist [get]
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add agrega un producto a la lista; el producto debe existir en el catálogo.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	productID := c.Params("productId")
	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	out, err := h.uc.Add(c.Context(), GetUserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove quita un producto de la lista.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.Context(), GetUserID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
