package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error nada de lo hecho dentro queda visible (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// InventoryReport datos de la planilla de inventario de un centro.
type InventoryReport struct {
	Center *entity.StorageCenter
	Items  []*entity.StockRecord
	Recent []*entity.LedgerEntry
	AsOf   time.Time
}

// InventoryReportGenerator genera la planilla imprimible (PDF) del inventario.
type InventoryReportGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report InventoryReport) ([]byte, error)
}
