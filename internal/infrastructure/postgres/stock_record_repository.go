package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

const stockColumns = `storage_center_id, category, name, quantity, expiration_date, updated_at`

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Get obtiene el stock de un artículo en un centro; (nil, nil) si no existe.
func (r *StockRecordRepo) Get(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error) {
	return r.getOne(ctx, "get stock record", `
		SELECT `+stockColumns+`
		FROM stock_records WHERE storage_center_id = $1 AND category = $2 AND name = $3`,
		storageCenterID, identity)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error) {
	return r.getOne(ctx, "get stock record for update", `
		SELECT `+stockColumns+`
		FROM stock_records WHERE storage_center_id = $1 AND category = $2 AND name = $3
		FOR UPDATE`,
		storageCenterID, identity)
}

func (r *StockRecordRepo) getOne(ctx context.Context, op, query, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error) {
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, storageCenterID, identity.Category().String(), identity.Name()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, asConflict(op, fmt.Errorf("%s: %w", op, err))
	}
	return rec, nil
}

// Create inserta un registro nuevo. Si otra transacción insertó la misma clave devuelve domain.ErrConflict.
func (r *StockRecordRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		record.StorageCenterID(), record.Identity().Category().String(), record.Identity().Name(),
		record.Quantity(), record.ExpirationDate(), record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: artículo %s creado concurrentemente", domain.ErrConflict, record.Identity())
		}
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("centro de acopio %s", record.StorageCenterID())
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// Update guarda cantidad, vencimiento y fecha de actualización.
func (r *StockRecordRepo) Update(ctx context.Context, record *entity.StockRecord) error {
	query := `
		UPDATE stock_records SET quantity = $4, expiration_date = $5, updated_at = $6
		WHERE storage_center_id = $1 AND category = $2 AND name = $3`
	cmd, err := r.q.Exec(ctx, query,
		record.StorageCenterID(), record.Identity().Category().String(), record.Identity().Name(),
		record.Quantity(), record.ExpirationDate(), record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("artículo %s no existe en el centro", record.Identity())
	}
	return nil
}

// Delete elimina el registro del artículo en el centro.
func (r *StockRecordRepo) Delete(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM stock_records WHERE storage_center_id = $1 AND category = $2 AND name = $3`,
		storageCenterID, identity.Category().String(), identity.Name(),
	)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("artículo %s no existe en el centro", identity)
	}
	return nil
}

// ListByCenter lista el stock del centro ordenado por categoría y nombre.
func (r *StockRecordRepo) ListByCenter(ctx context.Context, storageCenterID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE storage_center_id = $1
		ORDER BY category, name`
	return r.list(ctx, "list stock records", query, storageCenterID)
}

// ListExpired lista los registros con vencimiento anterior a asOf; forUpdate bloquea las filas.
func (r *StockRecordRepo) ListExpired(ctx context.Context, storageCenterID string, asOf time.Time, forUpdate bool) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE storage_center_id = $1 AND expiration_date IS NOT NULL AND expiration_date < $2
		ORDER BY category, name`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return r.list(ctx, "list expired stock records", query, storageCenterID, asOf)
}

func (r *StockRecordRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, asConflict(op, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()
	list := []*entity.StockRecord{}
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var (
		centerID, category, name string
		quantity                 int
		expiration               *time.Time
		updatedAt                time.Time
	)
	if err := row.Scan(&centerID, &category, &name, &quantity, &expiration, &updatedAt); err != nil {
		return nil, err
	}
	identity, err := entity.NewItemIdentity(category, name)
	if err != nil {
		return nil, fmt.Errorf("fila de stock corrupta (%s/%s): %w", category, name, err)
	}
	rec, err := entity.NewStockRecord(identity, quantity, centerID, expiration)
	if err != nil {
		return nil, fmt.Errorf("fila de stock corrupta (%s/%s): %w", category, name, err)
	}
	rec.UpdatedAt = updatedAt
	return rec, nil
}
