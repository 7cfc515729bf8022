package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/artesanica/artesanica-api/internal/application/cart"
	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

// CartHandler maneja el carrito del usuario autenticado. Antes de agregar se
// verifica contra el catálogo que el producto exista y tenga stock; el motor
// del carrito recibe el precio ya resuelto (snapshot).
type CartHandler struct {
	uc       *cart.CartUseCase
	products repository.ProductRepository
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *cart.CartUseCase, products repository.ProductRepository) *CartHandler {
	return &CartHandler{uc: uc, products: products}
}

// Get godoc
// @Summary      Obtener el carrito del usuario
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar un producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "productId, quantity"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/cart [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	product, err := h.products.GetByID(c.Context(), in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}

	// El stock se valida contra la cantidad resultante en el carrito, no solo
	// contra la cantidad de esta petición.
	current, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	resulting := in.Quantity
	for _, it := range current.Items {
		if it.ProductID == in.ProductID {
			resulting += it.Quantity
		}
	}
	if product.CountInStock < resulting {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("solo hay %d unidades disponibles", product.CountInStock),
		})
	}

	out, err := h.uc.AddItem(c.Context(), GetUserID(c), in.ProductID, in.Quantity, product.Price)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem fija la cantidad absoluta de una línea. El stock se verifica de
// nuevo contra el catálogo: la cantidad pedida no puede exceder las unidades
// disponibles, igual que al agregar.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	current, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	var productID string
	for _, it := range current.Items {
		if it.ItemID == c.Params("itemId") {
			productID = it.ProductID
			break
		}
	}
	if productID == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada en el carrito"})
	}

	product, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if product.CountInStock < in.Quantity {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("solo hay %d unidades disponibles", product.CountInStock),
		})
	}

	out, err := h.uc.UpdateItemQuantity(c.Context(), GetUserID(c), c.Params("itemId"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem elimina una línea del carrito.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetUserID(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear vacía el carrito completo.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
