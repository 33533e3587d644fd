package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/application/usecase"
	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/infrastructure/memory"
)

func newUseCase() *usecase.StorageCenterUseCase {
	return usecase.NewStorageCenterUseCase(memory.NewStore().StorageCenters())
}

func TestStorageCenter_CrearYObtener(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateStorageCenterRequest{OrganizationID: "org-1", Name: "Banco Sur", Description: "Bodega"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Hours)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banco Sur", got.Name)
	assert.Equal(t, "org-1", got.OrganizationID)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateStorageCenterRequest{Name: "", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStorageCenter_Update(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateStorageCenterRequest{Name: "A", Description: "B"})
	require.NoError(t, err)

	name := "Nuevo nombre"
	out, err := uc.Update(ctx, created.ID, dto.UpdateStorageCenterRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo nombre", out.Name)
	assert.Equal(t, "B", out.Description)

	blank := " "
	_, err = uc.Update(ctx, created.ID, dto.UpdateStorageCenterRequest{Description: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Description)
}

func TestStorageCenter_UpdateDayHours(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateStorageCenterRequest{Name: "A", Description: "B"})
	require.NoError(t, err)

	out, err := uc.UpdateDayHours(ctx, created.ID, 3, dto.DayHoursRequest{Open: "08:00", Close: "17:30"})
	require.NoError(t, err)
	require.Len(t, out.Hours, 1)
	assert.Equal(t, dto.DayHoursResponse{Day: 3, DayName: "WEDNESDAY", Open: "08:00", Close: "17:30"}, out.Hours[0])

	_, err = uc.UpdateDayHours(ctx, created.ID, 8, dto.DayHoursRequest{Open: "08:00", Close: "17:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateDayHours(ctx, created.ID, 3, dto.DayHoursRequest{Open: "18:00", Close: "08:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateDayHours(ctx, created.ID, 3, dto.DayHoursRequest{Open: "8am", Close: "17:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateDayHours(ctx, "nope", 1, dto.DayHoursRequest{Open: "08:00", Close: "17:00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Hours, 1)
	assert.Equal(t, "17:30", got.Hours[0].Close)
}

func TestStorageCenter_UpdateDayHoursConcurrentesNoPierdenDias(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateStorageCenterRequest{Name: "A", Description: "B"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for day := 1; day <= 7; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := uc.UpdateDayHours(ctx, created.ID, day, dto.DayHoursRequest{Open: "08:00", Close: "12:00"})
			assert.NoError(t, err)
		}(day)
	}
	wg.Wait()

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Hours, 7)
	for i, h := range got.Hours {
		assert.Equal(t, i+1, h.Day)
	}
}

func TestStorageCenter_ListYDelete(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	for _, org := range []string{"org-1", "org-1", "org-2"} {
		_, err := uc.Create(ctx, dto.CreateStorageCenterRequest{OrganizationID: org, Name: "C", Description: "D"})
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	org1, err := uc.List(ctx, "org-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, org1.Items, 2)

	paged, err := uc.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, paged.Items, 1)

	require.NoError(t, uc.Delete(ctx, org1.Items[0].ID))
	_, err = uc.GetByID(ctx, org1.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, org1.Items[0].ID), domain.ErrNotFound)
}
