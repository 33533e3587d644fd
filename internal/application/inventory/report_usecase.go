package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

// recentMovements cantidad de movimientos del libro incluidos en la planilla.
const recentMovements = 20

// ReportUseCase genera la planilla de inventario (PDF) de un centro de acopio.
type ReportUseCase struct {
	centerRepo repository.StorageCenterRepository
	stockRepo  repository.StockRecordRepository
	ledgerRepo repository.LedgerRepository
	generator  InventoryReportGenerator
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	centerRepo repository.StorageCenterRepository,
	stockRepo repository.StockRecordRepository,
	ledgerRepo repository.LedgerRepository,
	generator InventoryReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		centerRepo: centerRepo,
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
		generator:  generator,
	}
}

// InventoryPDF devuelve los bytes del PDF y un nombre de archivo sugerido.
// Los artículos se ordenan por categoría y nombre.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, centerID string, asOf time.Time) (pdfBytes []byte, filename string, err error) {
	center, err := uc.centerRepo.GetByID(ctx, centerID)
	if err != nil {
		return nil, "", fmt.Errorf("report: obtener centro: %w", err)
	}
	if center == nil {
		return nil, "", domain.NotFoundf("centro de acopio %s", centerID)
	}
	items, err := uc.stockRepo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, "", fmt.Errorf("report: listar stock: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Identity(), items[j].Identity()
		if a.Category() != b.Category() {
			return a.Category() < b.Category()
		}
		return a.Name() < b.Name()
	})
	recent, err := uc.ledgerRepo.ListByCenter(ctx, centerID, nil, nil, recentMovements, 0)
	if err != nil {
		return nil, "", fmt.Errorf("report: listar movimientos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, InventoryReport{
		Center: center,
		Items:  items,
		Recent: recent,
		AsOf:   asOf,
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("inventario-%s-%s.pdf", center.ID, asOf.Format("20060102"))
	return pdfBytes, filename, nil
}
