package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

// StockRecordRepository define el puerto para consultar/actualizar stock por centro+artículo.
// Usado dentro de transacciones para garantizar consistencia con el libro de movimientos.
// Get y GetForUpdate devuelven (nil, nil) si no hay registro.
type StockRecordRepository interface {
	Get(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error)
	// Create inserta un registro nuevo; si otro proceso lo creó antes devuelve domain.ErrConflict.
	Create(ctx context.Context, record *entity.StockRecord) error
	Update(ctx context.Context, record *entity.StockRecord) error
	Delete(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) error
	ListByCenter(ctx context.Context, storageCenterID string) ([]*entity.StockRecord, error)
	// ListExpired devuelve los registros con vencimiento estrictamente anterior a asOf.
	ListExpired(ctx context.Context, storageCenterID string, asOf time.Time, forUpdate bool) ([]*entity.StockRecord, error)
}
