package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ repository.StorageCenterRepository = (*StorageCenterRepo)(nil)

// StorageCenterRepo implementación del puerto StorageCenterRepository sobre PostgreSQL.
// El horario vive en storage_center_hours (una fila por día).
type StorageCenterRepo struct {
	pool *pgxpool.Pool
}

// NewStorageCenterRepository construye el adaptador de persistencia para centros.
func NewStorageCenterRepository(pool *pgxpool.Pool) *StorageCenterRepo {
	return &StorageCenterRepo{pool: pool}
}

// Create persiste un nuevo centro con su horario.
func (r *StorageCenterRepo) Create(ctx context.Context, center *entity.StorageCenter) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO storage_centers (id, organization_id, name, description, created_at, updated_at)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)`
		_, err := tx.Exec(ctx, query,
			center.ID, center.OrganizationID, center.Name, center.Description,
			center.CreatedAt, center.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert storage center: %w", err)
		}
		return insertHours(ctx, tx, center)
	})
}

// GetByID obtiene un centro por ID; (nil, nil) si no existe.
func (r *StorageCenterRepo) GetByID(ctx context.Context, id string) (*entity.StorageCenter, error) {
	query := `
		SELECT id, COALESCE(organization_id, ''), name, description, created_at, updated_at
		FROM storage_centers WHERE id = $1`
	var c entity.StorageCenter
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage center: %w", err)
	}
	if err := r.loadHours(ctx, []*entity.StorageCenter{&c}); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update actualiza nombre y descripción. El horario no se toca (ver SetDayHours).
func (r *StorageCenterRepo) Update(ctx context.Context, center *entity.StorageCenter) error {
	query := `
		UPDATE storage_centers SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, center.ID, center.Name, center.Description, center.UpdatedAt)
	if err != nil {
		if isInvalidText(err) {
			return domain.NotFoundf("centro de acopio %s", center.ID)
		}
		return fmt.Errorf("update storage center: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("centro de acopio %s", center.ID)
	}
	return nil
}

// SetDayHours guarda el horario de un día con upsert. El UPDATE previo bloquea la fila del centro,
// así que dos cambios concurrentes sobre días distintos no se pisan.
func (r *StorageCenterRepo) SetDayHours(ctx context.Context, id string, day entity.DayOfWeek, hours entity.TimeRange, updatedAt time.Time) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `UPDATE storage_centers SET updated_at = $2 WHERE id = $1`, id, updatedAt)
		if err != nil {
			if isInvalidText(err) {
				return domain.NotFoundf("centro de acopio %s", id)
			}
			return fmt.Errorf("touch storage center: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.NotFoundf("centro de acopio %s", id)
		}
		query := `
			INSERT INTO storage_center_hours (storage_center_id, day_of_week, open_minute, close_minute)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (storage_center_id, day_of_week)
			DO UPDATE SET open_minute = EXCLUDED.open_minute, close_minute = EXCLUDED.close_minute`
		if _, err := tx.Exec(ctx, query, id, int(day), int(hours.Start), int(hours.End)); err != nil {
			return fmt.Errorf("upsert storage center hours: %w", err)
		}
		return nil
	})
}

// List lista centros (opcionalmente de una organización) con paginación.
func (r *StorageCenterRepo) List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.StorageCenter, error) {
	query := `
		SELECT id, COALESCE(organization_id, ''), name, description, created_at, updated_at
		FROM storage_centers
		WHERE ($1 = '' OR organization_id = $1)
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, organizationID, limitOrAll(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list storage centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageCenter
	for rows.Next() {
		var c entity.StorageCenter
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage center: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list storage centers: %w", err)
	}
	if err := r.loadHours(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete elimina un centro; stock_records, ledger_entries y horarios caen por ON DELETE CASCADE.
func (r *StorageCenterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM storage_centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage center: %w", err)
	}
	return nil
}

func (r *StorageCenterRepo) loadHours(ctx context.Context, centers []*entity.StorageCenter) error {
	if len(centers) == 0 {
		return nil
	}
	byID := make(map[string]*entity.StorageCenter, len(centers))
	ids := make([]string, 0, len(centers))
	for _, c := range centers {
		c.Hours = map[entity.DayOfWeek]entity.TimeRange{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	query := `
		SELECT storage_center_id, day_of_week, open_minute, close_minute
		FROM storage_center_hours WHERE storage_center_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list storage center hours: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			centerID          string
			day               int
			openMin, closeMin int
		)
		if err := rows.Scan(&centerID, &day, &openMin, &closeMin); err != nil {
			return fmt.Errorf("scan storage center hours: %w", err)
		}
		if c, ok := byID[centerID]; ok {
			c.Hours[entity.DayOfWeek(day)] = entity.TimeRange{Start: entity.ClockTime(openMin), End: entity.ClockTime(closeMin)}
		}
	}
	return rows.Err()
}

// insertHours guarda el horario inicial de un centro recién creado.
func insertHours(ctx context.Context, tx pgx.Tx, center *entity.StorageCenter) error {
	batch := &pgx.Batch{}
	for _, day := range center.Days() {
		h := center.Hours[day]
		batch.Queue(`
			INSERT INTO storage_center_hours (storage_center_id, day_of_week, open_minute, close_minute)
			VALUES ($1, $2, $3, $4)`, center.ID, int(day), int(h.Start), int(h.End))
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert storage center hours: %w", err)
	}
	return nil
}

// limitOrAll convierte limit <= 0 en NULL (LIMIT NULL = sin límite).
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
