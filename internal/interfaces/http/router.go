package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/application/usecase"
	"github.com/jhoicas/Donaciones-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StorageCenterUC *usecase.StorageCenterUseCase
	Stock           *inventory.StockUseCase
	Report          *inventory.ReportUseCase
	Log             *logger.Logger
	ConflictRetries int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log.Component("http")))

	centers := api.Group("/storage-centers")
	centerHandler := NewStorageCenterHandler(deps.StorageCenterUC)
	centers.Post("/", centerHandler.Create)
	centers.Get("/", centerHandler.List)
	centers.Get("/:id", centerHandler.GetByID)
	centers.Put("/:id", centerHandler.Update)
	centers.Delete("/:id", centerHandler.Delete)
	centers.Put("/:id/hours/:day", centerHandler.UpdateDayHours)

	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Report, deps.ConflictRetries)
	centers.Post("/:id/check-in", inventoryHandler.CheckIn)
	centers.Post("/:id/check-out", inventoryHandler.CheckOut)
	centers.Post("/:id/transfer", inventoryHandler.Transfer)
	centers.Get("/:id/items", inventoryHandler.ListItems)
	centers.Get("/:id/items/expired", inventoryHandler.ListExpired)
	centers.Delete("/:id/items/expired", inventoryHandler.RemoveExpired)
	centers.Get("/:id/items/:category/:name", inventoryHandler.GetItem)
	centers.Get("/:id/transactions", inventoryHandler.ListTransactions)
	centers.Get("/:id/report.pdf", inventoryHandler.ReportPDF)
}
