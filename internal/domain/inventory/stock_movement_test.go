package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/inventory"
)

var rice = entity.MustItemIdentity("FOOD", "Rice")

func TestApplyCheckIn_CreaYLuegoIncrementa(t *testing.T) {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rec, created, err := inventory.ApplyCheckIn(nil, "c1", rice, 4, &exp)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, rec.Quantity())
	require.NotNil(t, rec.ExpirationDate())

	other := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	again, created, err := inventory.ApplyCheckIn(rec, "c1", rice, 6, &other)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, rec, again)
	assert.Equal(t, 10, again.Quantity())
	assert.Equal(t, exp, *again.ExpirationDate(), "el vencimiento solo se fija al crear")
}

func TestApplyCheckIn_Invalido(t *testing.T) {
	_, _, err := inventory.ApplyCheckIn(nil, "c1", rice, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = inventory.ApplyCheckIn(nil, "c1", entity.ItemIdentity{}, 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = inventory.ApplyCheckIn(nil, "", rice, 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyCheckOut(t *testing.T) {
	rec, err := entity.NewStockRecord(rice, 10, "c1", nil)
	require.NoError(t, err)

	before, depleted, err := inventory.ApplyCheckOut(rec, rice, 4)
	require.NoError(t, err)
	assert.False(t, depleted)
	assert.Equal(t, 10, before.Quantity())
	assert.Equal(t, 6, rec.Quantity())

	_, _, err = inventory.ApplyCheckOut(rec, rice, 7)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 6, rec.Quantity())

	before, depleted, err = inventory.ApplyCheckOut(rec, rice, 6)
	require.NoError(t, err)
	assert.True(t, depleted)
	assert.Equal(t, 6, before.Quantity())
	assert.Equal(t, 0, rec.Quantity())
}

func TestApplyCheckOut_SinRegistro(t *testing.T) {
	_, _, err := inventory.ApplyCheckOut(nil, rice, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = inventory.ApplyCheckOut(nil, rice, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpiredAt(t *testing.T) {
	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a, _ := entity.NewStockRecord(entity.MustItemIdentity("FOOD", "A"), 1, "c1", &past)
	b, _ := entity.NewStockRecord(entity.MustItemIdentity("FOOD", "B"), 1, "c1", &future)
	c, _ := entity.NewStockRecord(entity.MustItemIdentity("FOOD", "C"), 1, "c1", nil)
	d, _ := entity.NewStockRecord(entity.MustItemIdentity("FOOD", "D"), 1, "c1", &past)

	got := inventory.ExpiredAt([]*entity.StockRecord{a, b, c, d}, asOf)
	assert.Equal(t, []*entity.StockRecord{a, d}, got)
	assert.Empty(t, inventory.ExpiredAt(nil, asOf))
}
