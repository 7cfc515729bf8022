package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artesanica/artesanica-api/internal/application/auth"
	"github.com/artesanica/artesanica-api/internal/application/cart"
	"github.com/artesanica/artesanica-api/internal/application/usecase"
	"github.com/artesanica/artesanica-api/internal/application/wishlist"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CartUC      *cart.CartUseCase
	WishlistUC  *wishlist.WishlistUseCase
	ProductUC   *usecase.ProductUseCase
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	JWTSecret   string
	Cookie      CookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	cartHandler := NewCartHandler(deps.CartUC, deps.ProductRepo)
	wishlistHandler := NewWishlistHandler(deps.WishlistUC, deps.ProductRepo)
	productHandler := NewProductHandler(deps.ProductUC)

	protect := AuthMiddleware(deps.JWTSecret, deps.UserRepo)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: flujos públicos de registro, sesión y tokens de un solo uso
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/logout", authHandler.Logout)
	authGroup.Post("/forgotpassword", authHandler.ForgotPassword)
	authGroup.Put("/resetpassword/:resettoken", authHandler.ResetPassword)
	authGroup.Get("/verify-email/:verificationtoken", authHandler.VerifyEmail)

	// Auth: rutas protegidas (requieren sesión con correo verificado)
	authGroup.Get("/me", protect, authHandler.Me)
	authGroup.Put("/updatedetails", protect, authHandler.UpdateDetails)
	authGroup.Put("/updatepassword", protect, authHandler.UpdatePassword)

	// Carrito (protegido)
	cartGroup := api.Group("/cart", protect)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/", cartHandler.AddItem)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Put("/:itemId", cartHandler.UpdateItem)
	cartGroup.Delete("/:itemId", cartHandler.RemoveItem)

	// Lista de deseos (protegido)
	wishlistGroup := api.Group("/wishlist", protect)
	wishlistGroup.Get("/", wishlistHandler.Get)
	wishlistGroup.Post("/:productId", wishlistHandler.Add)
	wishlistGroup.Delete("/:productId", wishlistHandler.Remove)

	// Catálogo: lectura pública, escritura solo admin
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protect, adminOnly, productHandler.Create)
	products.Put("/:id", protect, adminOnly, productHandler.Update)
	products.Delete("/:id", protect, adminOnly, productHandler.Delete)
}
