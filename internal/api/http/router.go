package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The /auth prefix covers the whole
// storefront surface, public routes included.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	authGroup := app.Group("/auth")

	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/sendMessage", cfg.Contact.Send)
	authGroup.Get("/getAllProducts", cfg.Products.ListAll)

	gate := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin()

	authGroup.Post("/forgetPassword", gate, admin, cfg.Auth.ChangePassword)
	authGroup.Get("/getMessages", gate, admin, cfg.Contact.Messages)
	authGroup.Post("/uploadProduct", gate, admin, cfg.Products.Upload)
	authGroup.Put("/editProduct", gate, admin, cfg.Products.Edit)
	authGroup.Delete("/deleteProduct/:productId", gate, admin, cfg.Products.Delete)
	authGroup.Get("/verify", gate, cfg.Auth.Verify)
}
