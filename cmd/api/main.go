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
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/application/stock"
	"github.com/suminventa/kardex-api/internal/infrastructure/postgres"
	infraredis "github.com/suminventa/kardex-api/internal/infrastructure/redis"
	httpRouter "github.com/suminventa/kardex-api/internal/interfaces/http"
	"github.com/suminventa/kardex-api/pkg/config"
	"github.com/suminventa/kardex-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de consultas: opcional, el motor corre igual sin él.
	var cache stock.Cache
	if cfg.Redis.Enabled {
		redisCache, err := infraredis.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log.Zerolog())
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, consultas sin caché")
		} else {
			defer redisCache.Close()
			cache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis habilitado")
		}
	}

	txRunner := postgres.NewTxRunner(pool)
	receivingUC := inventory.NewReceivingUseCase(txRunner)
	issuanceUC := inventory.NewIssuanceUseCase(txRunner)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner)
	transferUC := inventory.NewTransferUseCase(txRunner)

	// Lecturas fuera de transacción, directo sobre el pool.
	receiptRepo := postgres.NewReceiptRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	documentsUC := inventory.NewDocumentQueryUseCase(receiptRepo, issueRepo)
	queriesUC := stock.NewQueryUseCase(stockRepo, movRepo, issueRepo, lotRepo, cache)

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
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Receiving:  receivingUC,
		Issuance:   issuanceUC,
		Adjustment: adjustmentUC,
		Transfer:   transferUC,
		Documents:  documentsUC,
		Queries:    queriesUC,
		JWTSecret:  cfg.JWT.Secret,
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
