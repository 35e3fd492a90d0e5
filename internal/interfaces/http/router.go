package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *usecase.SupplierUseCase
	EntryUC          *inventory.EntryUseCase
	BulkEntryUC      *inventory.BulkEntryUseCase
	WithdrawalUC     *inventory.WithdrawalUseCase
	BulkWithdrawalUC *inventory.BulkWithdrawalUseCase
	StockUC          *inventory.StockUseCase
	KardexUC         *inventory.KardexUseCase
	Log              zerolog.Logger
}

// NewApp crea la aplicación Fiber con middlewares, /health y las rutas de la API.
func NewApp(appName string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.KardexUC)
	products.Post("/", productHandler.Create)
	products.Post("/bulk", productHandler.CreateBulk)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", stockHandler.GetStock)
	products.Get("/:id/kardex", stockHandler.GetKardex)
	products.Get("/:id/kardex/pdf", stockHandler.GetKardexPDF)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC, deps.BulkEntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Post("/bulk", entryHandler.CreateBulk)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)

	withdrawals := api.Group("/withdrawals")
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalUC, deps.BulkWithdrawalUC)
	withdrawals.Post("/", withdrawalHandler.Create)
	withdrawals.Post("/bulk", withdrawalHandler.CreateBulk)
	withdrawals.Get("/", withdrawalHandler.List)
	withdrawals.Get("/:id", withdrawalHandler.GetByID)
	withdrawals.Put("/:id", withdrawalHandler.Update)
	withdrawals.Delete("/:id", withdrawalHandler.Delete)
}

// errorHandler responde {code, message} para errores no manejados (404 de ruta, panics recuperados).
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	apiCode := "INTERNAL"
	switch code {
	case fiber.StatusNotFound:
		apiCode = "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		apiCode = "METHOD_NOT_ALLOWED"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: apiCode, Message: err.Error()})
}
