package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
	"github.com/jhoicas/Donaciones-api/internal/infrastructure/memory"
)

func seedCenter(t *testing.T, s *memory.Store, id string) {
	t.Helper()
	c, err := entity.NewStorageCenter("", "Centro", "desc")
	require.NoError(t, err)
	c.ID = id
	require.NoError(t, s.StorageCenters().Create(context.Background(), c))
}

func record(t *testing.T, centerID, name string, qty int) *entity.StockRecord {
	t.Helper()
	r, err := entity.NewStockRecord(entity.MustItemIdentity("FOOD", name), qty, centerID, nil)
	require.NoError(t, err)
	return r
}

func TestStore_RunConfirmaAlTerminarSinError(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	ctx := context.Background()

	err := s.Run(ctx, func(stock repository.StockRecordRepository, ledger repository.LedgerRepository) error {
		r := record(t, "c1", "Rice", 3)
		if err := stock.Create(ctx, r); err != nil {
			return err
		}
		e, err := entity.NewLedgerEntry("c1", r, 3, entity.ActionCheckIn, time.Now())
		if err != nil {
			return err
		}
		return ledger.Append(ctx, e)
	})
	require.NoError(t, err)

	got, err := s.StockRecords().Get(ctx, "c1", entity.MustItemIdentity("FOOD", "Rice"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Quantity())
}

func TestStore_RunDeshaceSiFalla(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(stock repository.StockRecordRepository, ledger repository.LedgerRepository) error {
		require.NoError(t, stock.Create(ctx, record(t, "c1", "Rice", 3)))

		// dentro de la tx el cambio es visible
		inside, err := stock.Get(ctx, "c1", entity.MustItemIdentity("FOOD", "Rice"))
		require.NoError(t, err)
		require.NotNil(t, inside)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.StockRecords().Get(ctx, "c1", entity.MustItemIdentity("FOOD", "Rice"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_RunContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.StockRecordRepository, repository.LedgerRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRecordRepo_Reglas(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	ctx := context.Background()
	repo := s.StockRecords()

	require.NoError(t, repo.Create(ctx, record(t, "c1", "Rice", 1)))
	assert.ErrorIs(t, repo.Create(ctx, record(t, "c1", "Rice", 1)), domain.ErrConflict)
	assert.ErrorIs(t, repo.Create(ctx, record(t, "nope", "Rice", 1)), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, record(t, "c1", "Beans", 1)), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c1", entity.MustItemIdentity("FOOD", "Beans")), domain.ErrNotFound)

	// lo devuelto es una copia
	got, err := repo.Get(ctx, "c1", entity.MustItemIdentity("FOOD", "Rice"))
	require.NoError(t, err)
	require.NoError(t, got.IncrementQuantity(50))
	again, err := repo.Get(ctx, "c1", entity.MustItemIdentity("FOOD", "Rice"))
	require.NoError(t, err)
	assert.Equal(t, 1, again.Quantity())
}

func TestStockRecordRepo_ListOrdenadoYVencidos(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	ctx := context.Background()
	repo := s.StockRecords()
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	soap, err := entity.NewStockRecord(entity.MustItemIdentity("TOILETRIES", "Soap"), 1, "c1", &past)
	require.NoError(t, err)
	for _, r := range []*entity.StockRecord{record(t, "c1", "Rice", 1), soap, record(t, "c1", "Beans", 1)} {
		require.NoError(t, repo.Create(ctx, r))
	}

	list, err := repo.ListByCenter(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Beans", "Rice", "Soap"}, []string{
		list[0].Identity().Name(), list[1].Identity().Name(), list[2].Identity().Name(),
	})

	expired, err := repo.ListExpired(ctx, "c1", time.Now(), false)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Soap", expired[0].Identity().Name())

	empty, err := repo.ListByCenter(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLedgerRepo_OrdenRangoYDuplicados(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := s.Ledger()
	r := record(t, "c1", "Rice", 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		e, err := entity.NewLedgerEntry("c1", r, 1, entity.ActionCheckIn, base.AddDate(0, 0, i))
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, e))
		ids = append(ids, e.ID())
	}
	dup, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Append(ctx, dup), domain.ErrDuplicate)

	list, err := repo.ListByCenter(ctx, "c1", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, ids[3], list[0].ID())
	assert.Equal(t, ids[0], list[3].ID())

	from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)
	ranged, err := repo.ListByCenter(ctx, "c1", &from, &to, 0, 0)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, ids[2], ranged[0].ID())

	paged, err := repo.ListByCenter(ctx, "c1", nil, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, paged)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorageCenterRepo_DeleteEnCascada(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	seedCenter(t, s, "c2")
	ctx := context.Background()

	for _, c := range []string{"c1", "c2"} {
		r := record(t, c, "Rice", 2)
		require.NoError(t, s.StockRecords().Create(ctx, r))
		e, err := entity.NewLedgerEntry(c, r, 2, entity.ActionCheckIn, time.Now())
		require.NoError(t, err)
		require.NoError(t, s.Ledger().Append(ctx, e))
	}

	require.NoError(t, s.StorageCenters().Delete(ctx, "c1"))

	center, err := s.StorageCenters().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, center)
	stock, err := s.StockRecords().ListByCenter(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, stock)
	ledger, err := s.Ledger().ListByCenter(ctx, "c1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ledger)

	other, err := s.Ledger().ListByCenter(ctx, "c2", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	c2, err := entity.NewStorageCenter("", "Dup", "desc")
	require.NoError(t, err)
	c2.ID = "c2"
	assert.ErrorIs(t, s.StorageCenters().Create(ctx, c2), domain.ErrDuplicate)
}

func TestStorageCenterRepo_CopiaHorarios(t *testing.T) {
	s := memory.NewStore()
	seedCenter(t, s, "c1")
	ctx := context.Background()

	got, err := s.StorageCenters().GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NoError(t, got.UpdateDayHours(entity.TimeRange{Start: 60, End: 120}, entity.Monday))

	again, err := s.StorageCenters().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, again.Hours)

	// Update solo cambia nombre y descripción
	got.Name = "Renombrado"
	require.NoError(t, s.StorageCenters().Update(ctx, got))
	again, err = s.StorageCenters().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", again.Name)
	assert.Empty(t, again.Hours)

	require.NoError(t, s.StorageCenters().SetDayHours(ctx, "c1", entity.Monday, entity.TimeRange{Start: 60, End: 120}, time.Now()))
	require.NoError(t, s.StorageCenters().SetDayHours(ctx, "c1", entity.Friday, entity.TimeRange{Start: 600, End: 720}, time.Now()))
	again, err = s.StorageCenters().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, again.Hours, 2)
	assert.Equal(t, entity.TimeRange{Start: 60, End: 120}, again.Hours[entity.Monday])

	err = s.StorageCenters().SetDayHours(ctx, "c1", entity.Monday, entity.TimeRange{Start: 120, End: 60}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = s.StorageCenters().SetDayHours(ctx, "nope", entity.Monday, entity.TimeRange{Start: 60, End: 120}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
