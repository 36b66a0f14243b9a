package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-scan/internal/application/capture"
	"github.com/invorya/inventario-scan/internal/application/inventory"
	"github.com/invorya/inventario-scan/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movimientos *inventory.RegistrarMovimientoUseCase
	Puente      *capture.Puente
	Auth        config.AuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Auth.JWTSecret))

	// Catálogo y movimientos
	movHandler := NewMovimientoHandler(deps.Movimientos)
	protected.Get("/productos/:codigo", movHandler.BuscarProducto)
	protected.Post("/movimientos", movHandler.Registrar)

	// Puente de captura (escáner -> pantalla de registro)
	scanHandler := NewScanHandler(deps.Puente)
	protected.Post("/scan", scanHandler.Push)
	protected.Get("/scan/siguiente", scanHandler.Siguiente)
}
