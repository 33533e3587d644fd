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

	_ "github.com/jhoicas/Donaciones-api/docs"
	"github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/application/usecase"
	domaininventory "github.com/jhoicas/Donaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
	"github.com/jhoicas/Donaciones-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Donaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Donaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Donaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Donaciones-api/pkg/config"
	"github.com/jhoicas/Donaciones-api/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	txRunner   inventory.TxRunner
	centerRepo repository.StorageCenterRepository
	stockRepo  repository.StockRecordRepository
	ledgerRepo repository.LedgerRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			txRunner:   postgres.NewTxRunner(pool),
			centerRepo: postgres.NewStorageCenterRepository(pool),
			stockRepo:  postgres.NewStockRecordRepository(pool),
			ledgerRepo: postgres.NewLedgerRepository(pool),
			close:      pool.Close,
		}, nil
	}
	store := memory.NewStore()
	return &storage{
		txRunner:   store,
		centerRepo: store.StorageCenters(),
		stockRepo:  store.StockRecords(),
		ledgerRepo: store.Ledger(),
		close:      func() {},
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.close()

	stockUC := inventory.NewStockUseCase(
		store.txRunner, store.centerRepo, store.stockRepo, store.ledgerRepo,
		domaininventory.NewClock(), log,
		inventory.StockConfig{LedgerExpiredRemovals: cfg.Inventory.LedgerExpired},
	)
	reportUC := inventory.NewReportUseCase(
		store.centerRepo, store.stockRepo, store.ledgerRepo, infrapdf.NewMarotoReportGenerator(),
	)
	centerUC := usecase.NewStorageCenterUseCase(store.centerRepo)

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
		Title:    "Donaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StorageCenterUC: centerUC,
		Stock:           stockUC,
		Report:          reportUC,
		Log:             log,
		ConflictRetries: cfg.Inventory.ConflictRetries,
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
