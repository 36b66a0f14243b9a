package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invorya/inventario-scan/internal/application/capture"
	"github.com/invorya/inventario-scan/internal/application/inventory"
	"github.com/invorya/inventario-scan/internal/domain/repository"
	"github.com/invorya/inventario-scan/internal/infrastructure/excel"
	"github.com/invorya/inventario-scan/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/inventario-scan/internal/interfaces/http"
	"github.com/invorya/inventario-scan/pkg/config"
	"github.com/invorya/inventario-scan/pkg/logger"
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
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		catalogo repository.CatalogoSource
		ledger   repository.LedgerStore
		logStore repository.LogStore
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Store.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema de PostgreSQL")
		}
		catalogo = postgres.NewCatalogoSource(pool)
		ledger = postgres.NewLedgerStore(pool)
		logStore = postgres.NewLogStore(pool)
	default:
		wb := excel.NewWorkbook(cfg.Store.ExcelPath)
		if err := wb.Inicializar(); err != nil {
			log.Fatal().Err(err).Msg("workbook de inventario")
		}
		catalogo = excel.NewCatalogoSource(wb)
		ledger = excel.NewLedgerStore(wb, nil)
		logStore = excel.NewLogStore(wb)
	}

	movimientosUC := inventory.NewRegistrarMovimientoUseCase(
		catalogo, ledger, logStore, inventory.PoliticaPorDefecto, log,
	)

	// Puente de captura: POST /api/scan lo alimenta; opcionalmente también un
	// lector en modo teclado conectado a stdin.
	puente := capture.NewPuente(8)
	if cfg.Store.CaptureStdin {
		go bombearCodigos(ctx, capture.NewEntradaManual(os.Stdin), puente, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Movimientos: movimientosUC,
		Puente:      puente,
		Auth:        cfg.Auth,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// bombearCodigos mueve códigos desde una fuente de captura hacia el puente.
func bombearCodigos(ctx context.Context, fuente capture.Capture, puente *capture.Puente, log *logger.Logger) {
	for {
		codigo, err := fuente.Siguiente(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("captura de códigos")
			}
			return
		}
		if !puente.Push(codigo) {
			log.Warn().Str("codigo", codigo).Msg("escaneo descartado: buffer lleno")
		}
	}
}
