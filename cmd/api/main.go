package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// repos agrupa los adaptadores de persistencia elegidos por DB_DRIVER.
type repos struct {
	products    repository.ProductRepository
	suppliers   repository.SupplierRepository
	entries     repository.EntryRepository
	withdrawals repository.WithdrawalRepository
	tx          inventory.TxRunner
	close       func()
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openRepos(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer r.close()

	v := validator.New()
	maxItems := cfg.Bulk.MaxItems
	deps := httpRouter.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(r.products, v),
		SupplierUC:       usecase.NewSupplierUseCase(r.suppliers, v),
		EntryUC:          inventory.NewEntryUseCase(r.products, r.suppliers, r.entries, v),
		BulkEntryUC:      inventory.NewBulkEntryUseCase(r.products, r.suppliers, r.entries, v, maxItems, log.Component("bulk_entry")),
		WithdrawalUC:     inventory.NewWithdrawalUseCase(r.tx, r.products, r.withdrawals, v),
		BulkWithdrawalUC: inventory.NewBulkWithdrawalUseCase(r.products, r.entries, r.withdrawals, v, maxItems, log.Component("bulk_withdrawal")),
		StockUC:          inventory.NewStockUseCase(r.products, r.entries, r.withdrawals),
		KardexUC: inventory.NewKardexUseCase(r.products, r.suppliers, r.entries, r.withdrawals,
			infrapdf.NewKardexPDFGenerator(cfg.App.Name)),
		Log: log.Component("http"),
	}

	app := httpRouter.NewApp(cfg.App.Name, deps)

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Almacén API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

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

func openRepos(ctx context.Context, cfg config.DBConfig) (*repos, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		p, s, e, w := store.Repos()
		return &repos{products: p, suppliers: s, entries: e, withdrawals: w, tx: memory.NewTxRunner(store), close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.ApplySchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		products:    postgres.NewProductRepository(pool),
		suppliers:   postgres.NewSupplierRepository(pool),
		entries:     postgres.NewEntryRepository(pool),
		withdrawals: postgres.NewWithdrawalRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}
