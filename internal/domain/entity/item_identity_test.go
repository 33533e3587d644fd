package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

func TestParseCategory_IgnoraMayusculasYEspacios(t *testing.T) {
	for _, in := range []string{"FOOD", "food", " Food ", "fOoD"} {
		c, ok := entity.ParseCategory(in)
		require.True(t, ok, in)
		assert.Equal(t, entity.CategoryFood, c)
	}

	_, ok := entity.ParseCategory("TOYS")
	assert.False(t, ok)
	_, ok = entity.ParseCategory("")
	assert.False(t, ok)
}

func TestItemIdentity_RoundTrip(t *testing.T) {
	for _, c := range entity.Categories() {
		id, err := entity.NewItemIdentity(c.String(), "Canned Beans")
		require.NoError(t, err)

		again, err := entity.NewItemIdentity(id.Category().String(), id.Name())
		require.NoError(t, err)
		assert.True(t, id.Equal(again))
		assert.Equal(t, id, again)
	}
}

func TestItemIdentity_ComparableComoClaveDeMap(t *testing.T) {
	m := map[entity.ItemIdentity]int{}
	m[entity.MustItemIdentity("food", "Rice")] = 1
	m[entity.MustItemIdentity("FOOD", "Rice")]++

	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[entity.MustItemIdentity("Food", "Rice")])
	assert.NotEqual(t, entity.MustItemIdentity("FOOD", "Rice"), entity.MustItemIdentity("FOOD", "rice"))
}

func TestNewItemIdentity_Invalida(t *testing.T) {
	_, err := entity.NewItemIdentity("TOYS", "Ball")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.NewItemIdentity("FOOD", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemIdentity_SettersNoModificanSiFallan(t *testing.T) {
	id := entity.MustItemIdentity("CLOTHING", "Jacket")

	assert.ErrorIs(t, id.SetName(""), domain.ErrInvalidInput)
	assert.ErrorIs(t, id.SetCategory("weapons"), domain.ErrInvalidInput)
	assert.Equal(t, "CLOTHING/Jacket", id.String())

	require.NoError(t, id.SetCategory("toiletries"))
	require.NoError(t, id.SetName("Soap"))
	assert.Equal(t, entity.CategoryToiletries, id.Category())
	assert.Equal(t, "Soap", id.Name())
}

func TestItemIdentity_IsZero(t *testing.T) {
	var zero entity.ItemIdentity
	assert.True(t, zero.IsZero())
	assert.False(t, entity.MustItemIdentity("FOOD", "Rice").IsZero())
	assert.Panics(t, func() { entity.MustItemIdentity("nope", "Rice") })
}
