package inventory

import (
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

// ApplyCheckIn aplica un ingreso sobre el registro existente o crea uno nuevo si existing es nil.
// created indica que el registro no existía. expiration solo se usa al crear.
func ApplyCheckIn(existing *entity.StockRecord, storageCenterID string, identity entity.ItemIdentity, quantity int, expiration *time.Time) (record *entity.StockRecord, created bool, err error) {
	if quantity <= 0 {
		return nil, false, domain.Invalidf("la cantidad a ingresar debe ser positiva (%d)", quantity)
	}
	if identity.IsZero() {
		return nil, false, domain.Invalidf("la identidad del artículo es requerida")
	}
	if existing == nil {
		record, err = entity.NewStockRecord(identity, quantity, storageCenterID, expiration)
		if err != nil {
			return nil, false, err
		}
		return record, true, nil
	}
	if err := existing.IncrementQuantity(quantity); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// ApplyCheckOut retira quantity del registro. Devuelve la foto previa al retiro (para el libro)
// y depleted = true si la existencia quedó en cero y el registro debe eliminarse.
func ApplyCheckOut(existing *entity.StockRecord, identity entity.ItemIdentity, quantity int) (before entity.StockRecord, depleted bool, err error) {
	if quantity <= 0 {
		return entity.StockRecord{}, false, domain.Invalidf("la cantidad a retirar debe ser positiva (%d)", quantity)
	}
	if existing == nil {
		return entity.StockRecord{}, false, domain.NotFoundf("artículo %s no existe en el centro", identity)
	}
	before = existing.Snapshot()
	if err := existing.DecrementQuantity(quantity); err != nil {
		return entity.StockRecord{}, false, err
	}
	return before, existing.Quantity() == 0, nil
}

// ExpiredAt filtra los registros vencidos a la fecha asOf, conservando el orden de entrada.
func ExpiredAt(records []*entity.StockRecord, asOf time.Time) []*entity.StockRecord {
	out := make([]*entity.StockRecord, 0)
	for _, r := range records {
		if r.IsExpired(asOf) {
			out = append(out, r)
		}
	}
	return out
}
