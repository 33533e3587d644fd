package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain"
)

type captureGenerator struct {
	got inventory.InventoryReport
	err error
}

func (g *captureGenerator) GenerateInventoryPDF(_ context.Context, r inventory.InventoryReport) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestInventoryPDF(t *testing.T) {
	f := newFixture(t, "c1")
	ctx := context.Background()
	for _, in := range []inventory.CheckInInput{
		{StorageCenterID: "c1", Category: "TOILETRIES", Name: "Soap", Quantity: 4},
		{StorageCenterID: "c1", Category: "FOOD", Name: "Rice", Quantity: 2},
		{StorageCenterID: "c1", Category: "FOOD", Name: "Beans", Quantity: 1},
	} {
		_, err := f.uc.CheckIn(ctx, in)
		require.NoError(t, err)
	}

	gen := &captureGenerator{}
	uc := inventory.NewReportUseCase(f.store.StorageCenters(), f.store.StockRecords(), f.store.Ledger(), gen)
	asOf := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	pdf, filename, err := uc.InventoryPDF(ctx, "c1", asOf)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "inventario-c1-20250715.pdf", filename)

	require.NotNil(t, gen.got.Center)
	assert.Equal(t, "c1", gen.got.Center.ID)
	require.Len(t, gen.got.Items, 3)
	assert.Equal(t, "Beans", gen.got.Items[0].Identity().Name())
	assert.Equal(t, "Rice", gen.got.Items[1].Identity().Name())
	assert.Equal(t, "Soap", gen.got.Items[2].Identity().Name())
	assert.Len(t, gen.got.Recent, 3)
	assert.Equal(t, asOf, gen.got.AsOf)
}

func TestInventoryPDF_Errores(t *testing.T) {
	f := newFixture(t, "c1")
	ctx := context.Background()

	uc := inventory.NewReportUseCase(f.store.StorageCenters(), f.store.StockRecords(), f.store.Ledger(), &captureGenerator{})
	_, _, err := uc.InventoryPDF(ctx, "nope", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("fuente no disponible")
	uc = inventory.NewReportUseCase(f.store.StorageCenters(), f.store.StockRecords(), f.store.Ledger(), &captureGenerator{err: boom})
	_, _, err = uc.InventoryPDF(ctx, "c1", time.Now())
	assert.ErrorIs(t, err, boom)
}
