package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/artesanica/artesanica-api/internal/application/auth"
	"github.com/artesanica/artesanica-api/internal/application/cart"
	"github.com/artesanica/artesanica-api/internal/application/usecase"
	"github.com/artesanica/artesanica-api/internal/application/wishlist"
	"github.com/artesanica/artesanica-api/internal/infrastructure/mail"
	"github.com/artesanica/artesanica-api/internal/infrastructure/mongodb"
	httpRouter "github.com/artesanica/artesanica-api/internal/interfaces/http"
	"github.com/artesanica/artesanica-api/pkg/config"
	"github.com/artesanica/artesanica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	wishlistRepo := mongodb.NewWishlistRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	mailer := mail.NewSMTPMailer(cfg.SMTP)

	authUC := auth.NewAuthUseCase(userRepo, mailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.BaseURL)
	cartUC := cart.NewCartUseCase(cartRepo)
	wishlistUC := wishlist.NewWishlistUseCase(wishlistRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Artesanica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CartUC:      cartUC,
		WishlistUC:  wishlistUC,
		ProductUC:   productUC,
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			ExpireDays: cfg.JWT.CookieExpire,
			Secure:     cfg.App.Env == "production",
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
