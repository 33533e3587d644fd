package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del libro de movimientos (solo anexar y leer).
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// ListByCenter lista los movimientos del centro en [from, to], más recientes primero.
	ListByCenter(ctx context.Context, storageCenterID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
}
