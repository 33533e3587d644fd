package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

// StorageCenterRepository define el puerto de persistencia para StorageCenter (DIP).
// GetByID devuelve (nil, nil) si el centro no existe.
type StorageCenterRepository interface {
	Create(ctx context.Context, center *entity.StorageCenter) error
	GetByID(ctx context.Context, id string) (*entity.StorageCenter, error)
	// Update persiste nombre y descripción; el horario se cambia con SetDayHours.
	Update(ctx context.Context, center *entity.StorageCenter) error
	// SetDayHours guarda el horario de un solo día sin tocar los demás.
	// domain.ErrNotFound si el centro no existe.
	SetDayHours(ctx context.Context, id string, day entity.DayOfWeek, hours entity.TimeRange, updatedAt time.Time) error
	List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.StorageCenter, error)
	// Delete elimina el centro junto con su stock y su libro de movimientos.
	Delete(ctx context.Context, id string) error
}
