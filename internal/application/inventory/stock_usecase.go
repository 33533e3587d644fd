package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
	"github.com/jhoicas/Donaciones-api/pkg/logger"
)

// StockConfig opciones del motor de inventario.
type StockConfig struct {
	// LedgerExpiredRemovals registra una entrada "Expired" por cada registro dado de baja por vencimiento.
	LedgerExpiredRemovals bool
}

// StockUseCase registra ingresos y retiros de donaciones en un centro de acopio.
// Cada operación compuesta (stock + libro) corre en una sola transacción con la fila
// de stock bloqueada (GetForUpdate), así dos operaciones sobre el mismo artículo se serializan.
type StockUseCase struct {
	txRunner   TxRunner
	centerRepo repository.StorageCenterRepository
	stockRepo  repository.StockRecordRepository
	ledgerRepo repository.LedgerRepository
	clock      *inventory.Clock
	log        *logger.Logger
	cfg        StockConfig
}

// NewStockUseCase construye el caso de uso. stockRepo y ledgerRepo se usan solo para lecturas fuera de tx.
func NewStockUseCase(
	txRunner TxRunner,
	centerRepo repository.StorageCenterRepository,
	stockRepo repository.StockRecordRepository,
	ledgerRepo repository.LedgerRepository,
	clock *inventory.Clock,
	log *logger.Logger,
	cfg StockConfig,
) *StockUseCase {
	if clock == nil {
		clock = inventory.NewClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		txRunner:   txRunner,
		centerRepo: centerRepo,
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
		clock:      clock,
		log:        log.Component("stock"),
		cfg:        cfg,
	}
}

// CheckInInput entrada para ingresar donaciones.
type CheckInInput struct {
	StorageCenterID string
	Category        string
	Name            string
	Quantity        int
	ExpirationDate  *time.Time // solo se usa si el artículo no existía en el centro
}

// CheckOutInput entrada para retirar donaciones.
type CheckOutInput struct {
	StorageCenterID string
	Category        string
	Name            string
	Quantity        int
}

// TransferInput entrada para trasladar stock entre dos centros.
type TransferInput struct {
	FromStorageCenterID string
	ToStorageCenterID   string
	Category            string
	Name                string
	Quantity            int
}

// CheckIn suma quantity al artículo (lo crea si no existía) y anexa una entrada "Check In".
func (uc *StockUseCase) CheckIn(ctx context.Context, in CheckInInput) (*dto.StockMovementResponse, error) {
	identity, err := entity.NewItemIdentity(in.Category, in.Name)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalidf("la cantidad a ingresar debe ser positiva (%d)", in.Quantity)
	}
	if err := uc.ensureCenter(ctx, in.StorageCenterID); err != nil {
		return nil, err
	}

	var out *dto.StockMovementResponse
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, ledgerRepo repository.LedgerRepository) error {
		res, err := uc.checkInTx(ctx, stockRepo, ledgerRepo, in.StorageCenterID, identity, in.Quantity, in.ExpirationDate)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("storage_center_id", in.StorageCenterID).
		Str("item", identity.String()).
		Int("quantity", in.Quantity).
		Int("on_hand", out.Item.Quantity).
		Msg("ingreso registrado")
	return out, nil
}

// CheckOut resta quantity del artículo y anexa una entrada "Check Out".
// Si la existencia llega a cero el registro se elimina; la entrada conserva la foto previa.
func (uc *StockUseCase) CheckOut(ctx context.Context, in CheckOutInput) (*dto.StockMovementResponse, error) {
	identity, err := entity.NewItemIdentity(in.Category, in.Name)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalidf("la cantidad a retirar debe ser positiva (%d)", in.Quantity)
	}
	if err := uc.ensureCenter(ctx, in.StorageCenterID); err != nil {
		return nil, err
	}

	var out *dto.StockMovementResponse
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, ledgerRepo repository.LedgerRepository) error {
		res, _, err := uc.checkOutTx(ctx, stockRepo, ledgerRepo, in.StorageCenterID, identity, in.Quantity)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("storage_center_id", in.StorageCenterID).
		Str("item", identity.String()).
		Int("quantity", in.Quantity).
		Bool("depleted", out.Depleted).
		Msg("retiro registrado")
	return out, nil
}

// TransferItem retira del centro origen e ingresa en el destino en la misma transacción.
// El vencimiento del lote viaja con el stock si el destino no tenía el artículo.
func (uc *StockUseCase) TransferItem(ctx context.Context, in TransferInput) (*dto.TransferResponse, error) {
	identity, err := entity.NewItemIdentity(in.Category, in.Name)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalidf("la cantidad a trasladar debe ser positiva (%d)", in.Quantity)
	}
	if in.FromStorageCenterID == in.ToStorageCenterID {
		return nil, domain.Invalidf("el centro de origen y destino deben ser distintos")
	}
	if err := uc.ensureCenter(ctx, in.FromStorageCenterID); err != nil {
		return nil, err
	}
	if err := uc.ensureCenter(ctx, in.ToStorageCenterID); err != nil {
		return nil, err
	}

	var out dto.TransferResponse
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, ledgerRepo repository.LedgerRepository) error {
		outRes, before, err := uc.checkOutTx(ctx, stockRepo, ledgerRepo, in.FromStorageCenterID, identity, in.Quantity)
		if err != nil {
			return err
		}
		inRes, err := uc.checkInTx(ctx, stockRepo, ledgerRepo, in.ToStorageCenterID, identity, in.Quantity, before.ExpirationDate())
		if err != nil {
			return err
		}
		out = dto.TransferResponse{Out: *outRes, In: *inRes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("from", in.FromStorageCenterID).
		Str("to", in.ToStorageCenterID).
		Str("item", identity.String()).
		Int("quantity", in.Quantity).
		Msg("traslado registrado")
	return &out, nil
}

func (uc *StockUseCase) checkInTx(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	ledgerRepo repository.LedgerRepository,
	centerID string,
	identity entity.ItemIdentity,
	quantity int,
	expiration *time.Time,
) (*dto.StockMovementResponse, error) {
	existing, err := stockRepo.GetForUpdate(ctx, centerID, identity)
	if err != nil {
		return nil, err
	}
	record, created, err := inventory.ApplyCheckIn(existing, centerID, identity, quantity, expiration)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	record.UpdatedAt = now
	if created {
		err = stockRepo.Create(ctx, record)
	} else {
		err = stockRepo.Update(ctx, record)
	}
	if err != nil {
		return nil, err
	}
	entry, err := entity.NewLedgerEntry(centerID, record, quantity, entity.ActionCheckIn, now)
	if err != nil {
		return nil, err
	}
	if err := ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.StockMovementResponse{
		Item:        toStockRecordResponse(record, now),
		Transaction: toLedgerEntryResponse(entry),
	}, nil
}

func (uc *StockUseCase) checkOutTx(
	ctx context.Context,
	stockRepo repository.StockRecordRepository,
	ledgerRepo repository.LedgerRepository,
	centerID string,
	identity entity.ItemIdentity,
	quantity int,
) (*dto.StockMovementResponse, *entity.StockRecord, error) {
	existing, err := stockRepo.GetForUpdate(ctx, centerID, identity)
	if err != nil {
		return nil, nil, err
	}
	before, depleted, err := inventory.ApplyCheckOut(existing, identity, quantity)
	if err != nil {
		return nil, nil, err
	}
	now := uc.clock.Now()
	existing.UpdatedAt = now
	if depleted {
		err = stockRepo.Delete(ctx, centerID, identity)
	} else {
		err = stockRepo.Update(ctx, existing)
	}
	if err != nil {
		return nil, nil, err
	}
	entry, err := entity.NewLedgerEntry(centerID, &before, quantity, entity.ActionCheckOut, now)
	if err != nil {
		return nil, nil, err
	}
	if err := ledgerRepo.Append(ctx, entry); err != nil {
		return nil, nil, err
	}
	return &dto.StockMovementResponse{
		Item:        toStockRecordResponse(existing, now),
		Depleted:    depleted,
		Transaction: toLedgerEntryResponse(entry),
	}, &before, nil
}

// ListItems devuelve las existencias del centro.
func (uc *StockUseCase) ListItems(ctx context.Context, centerID string) (*dto.StockListResponse, error) {
	if err := uc.ensureCenter(ctx, centerID); err != nil {
		return nil, err
	}
	records, err := uc.stockRepo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}
	return toStockListResponse(records, uc.clock.Now()), nil
}

// GetItem devuelve la existencia de un artículo; domain.ErrNotFound si no está en el centro.
func (uc *StockUseCase) GetItem(ctx context.Context, centerID, category, name string) (*dto.StockRecordResponse, error) {
	identity, err := entity.NewItemIdentity(category, name)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCenter(ctx, centerID); err != nil {
		return nil, err
	}
	record, err := uc.stockRepo.Get(ctx, centerID, identity)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.NotFoundf("artículo %s no existe en el centro", identity)
	}
	out := toStockRecordResponse(record, uc.clock.Now())
	return &out, nil
}

// ListExpiredItems devuelve los registros vencidos a la fecha asOf (solo lectura).
func (uc *StockUseCase) ListExpiredItems(ctx context.Context, centerID string, asOf time.Time) (*dto.StockListResponse, error) {
	if err := uc.ensureCenter(ctx, centerID); err != nil {
		return nil, err
	}
	records, err := uc.stockRepo.ListExpired(ctx, centerID, asOf, false)
	if err != nil {
		return nil, err
	}
	return toStockListResponse(inventory.ExpiredAt(records, asOf), asOf), nil
}

// RemoveExpiredItems elimina todos los registros vencidos a la fecha asOf en una sola transacción.
// Con LedgerExpiredRemovals anexa una entrada "Expired" por registro eliminado.
func (uc *StockUseCase) RemoveExpiredItems(ctx context.Context, centerID string, asOf time.Time) (*dto.ExpiredRemovalResponse, error) {
	if err := uc.ensureCenter(ctx, centerID); err != nil {
		return nil, err
	}

	out := &dto.ExpiredRemovalResponse{
		Items:        []dto.StockRecordResponse{},
		Transactions: []dto.LedgerEntryResponse{},
	}
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, ledgerRepo repository.LedgerRepository) error {
		records, err := stockRepo.ListExpired(ctx, centerID, asOf, true)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		for _, r := range inventory.ExpiredAt(records, asOf) {
			if err := stockRepo.Delete(ctx, centerID, r.Identity()); err != nil {
				return err
			}
			out.Items = append(out.Items, toStockRecordResponse(r, asOf))
			if !uc.cfg.LedgerExpiredRemovals || r.Quantity() == 0 {
				continue
			}
			entry, err := entity.NewLedgerEntry(centerID, r, r.Quantity(), entity.ActionExpired, now)
			if err != nil {
				return err
			}
			if err := ledgerRepo.Append(ctx, entry); err != nil {
				return err
			}
			out.Transactions = append(out.Transactions, toLedgerEntryResponse(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Removed = len(out.Items)
	if out.Removed > 0 {
		uc.log.Info().
			Str("storage_center_id", centerID).
			Time("as_of", asOf).
			Int("removed", out.Removed).
			Msg("artículos vencidos dados de baja")
	}
	return out, nil
}

// ListTransactions lista el libro de movimientos del centro, más recientes primero.
func (uc *StockUseCase) ListTransactions(ctx context.Context, centerID string, from, to *time.Time, limit, offset int) (*dto.LedgerListResponse, error) {
	if err := uc.ensureCenter(ctx, centerID); err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.Invalidf("rango de fechas invertido")
	}
	entries, err := uc.ledgerRepo.ListByCenter(ctx, centerID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *StockUseCase) ensureCenter(ctx context.Context, id string) error {
	if id == "" {
		return domain.Invalidf("el centro de acopio es requerido")
	}
	center, err := uc.centerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if center == nil {
		return domain.NotFoundf("centro de acopio %s", id)
	}
	return nil
}
