package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/infrastructure/pdf"
)

func TestGenerateInventoryPDF(t *testing.T) {
	center, err := entity.NewStorageCenter("", "Banco de Alimentos Norte", "Bodega principal")
	require.NoError(t, err)
	center.ID = "c1"
	require.NoError(t, center.UpdateDayHours(entity.TimeRange{Start: 8 * 60, End: 17 * 60}, entity.Monday))

	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expired, err := entity.NewStockRecord(entity.MustItemIdentity("FOOD", "Leche"), 4, "c1", &past)
	require.NoError(t, err)
	soap, err := entity.NewStockRecord(entity.MustItemIdentity("TOILETRIES", "Jabón"), 12, "c1", nil)
	require.NoError(t, err)
	entry, err := entity.NewLedgerEntry("c1", soap, 12, entity.ActionCheckIn, time.Now())
	require.NoError(t, err)

	out, err := pdf.NewMarotoReportGenerator().GenerateInventoryPDF(context.Background(), appinventory.InventoryReport{
		Center: center,
		Items:  []*entity.StockRecord{expired, soap},
		Recent: []*entity.LedgerEntry{entry},
		AsOf:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryPDF_Vacio(t *testing.T) {
	center, err := entity.NewStorageCenter("", "Centro", "desc")
	require.NoError(t, err)

	out, err := pdf.NewMarotoReportGenerator().GenerateInventoryPDF(context.Background(), appinventory.InventoryReport{
		Center: center, AsOf: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewMarotoReportGenerator().GenerateInventoryPDF(context.Background(), appinventory.InventoryReport{})
	assert.Error(t, err)
}
