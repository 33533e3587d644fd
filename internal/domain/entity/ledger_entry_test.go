package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

func TestNewLedgerEntry(t *testing.T) {
	r, err := entity.NewStockRecord(beans(), 10, "c1", nil)
	require.NoError(t, err)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	e, err := entity.NewLedgerEntry("c1", r, 10, entity.ActionCheckIn, at)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID())
	assert.Equal(t, "c1", e.StorageCenterID())
	assert.Equal(t, "Canned Beans", e.ItemName())
	assert.Equal(t, entity.CategoryFood, e.ItemCategory())
	assert.Equal(t, 10, e.Quantity())
	assert.Equal(t, "Check In", e.Action())
	assert.Equal(t, at, e.Timestamp())

	other, err := entity.NewLedgerEntry("c1", r, 10, entity.ActionCheckIn, at)
	require.NoError(t, err)
	assert.False(t, e.Equal(other), "cada entrada recibe un ID propio")
	assert.True(t, e.Equal(entity.RestoreLedgerEntry(e.ID(), "c9", "x", entity.CategoryClothing, 1, "otra", at)))
}

func TestNewLedgerEntry_Invalida(t *testing.T) {
	r, err := entity.NewStockRecord(beans(), 10, "c1", nil)
	require.NoError(t, err)
	now := time.Now()

	cases := map[string]func() error{
		"sin centro":        func() error { _, err := entity.NewLedgerEntry("", r, 1, entity.ActionCheckIn, now); return err },
		"sin artículo":      func() error { _, err := entity.NewLedgerEntry("c1", nil, 1, entity.ActionCheckIn, now); return err },
		"cantidad cero":     func() error { _, err := entity.NewLedgerEntry("c1", r, 0, entity.ActionCheckOut, now); return err },
		"cantidad negativa": func() error { _, err := entity.NewLedgerEntry("c1", r, -2, entity.ActionCheckOut, now); return err },
		"sin acción":        func() error { _, err := entity.NewLedgerEntry("c1", r, 1, " ", now); return err },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, fn(), domain.ErrInvalidInput)
		})
	}
}

func TestLedgerEntry_CopiaNombrePorValor(t *testing.T) {
	r, err := entity.NewStockRecord(beans(), 10, "c1", nil)
	require.NoError(t, err)
	e, err := entity.NewLedgerEntry("c1", r, 3, entity.ActionCheckOut, time.Now())
	require.NoError(t, err)

	id := r.Identity()
	require.NoError(t, id.SetName("Black Beans"))

	assert.Equal(t, "Canned Beans", e.ItemName())
}
