package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// Acciones registradas en el libro de movimientos.
const (
	ActionCheckIn  = "Check In"
	ActionCheckOut = "Check Out"
	ActionExpired  = "Expired"
)

// LedgerEntry es un registro inmutable de un movimiento de stock en un centro.
// Nombre y categoría se copian por valor: el historial no cambia si el artículo se renombra.
type LedgerEntry struct {
	id              string
	storageCenterID string
	itemName        string
	itemCategory    Category
	quantity        int
	action          string
	timestamp       time.Time
}

// NewLedgerEntry valida y construye una entrada con un ID nuevo.
func NewLedgerEntry(storageCenterID string, snapshot *StockRecord, quantity int, action string, at time.Time) (*LedgerEntry, error) {
	if strings.TrimSpace(storageCenterID) == "" {
		return nil, domain.Invalidf("el centro de acopio es requerido")
	}
	if snapshot == nil {
		return nil, domain.Invalidf("el artículo del movimiento es requerido")
	}
	if quantity <= 0 {
		return nil, domain.Invalidf("la cantidad del movimiento debe ser positiva (%d)", quantity)
	}
	if strings.TrimSpace(action) == "" {
		return nil, domain.Invalidf("la acción del movimiento es requerida")
	}
	return &LedgerEntry{
		id:              uuid.New().String(),
		storageCenterID: storageCenterID,
		itemName:        snapshot.Identity().Name(),
		itemCategory:    snapshot.Identity().Category(),
		quantity:        quantity,
		action:          action,
		timestamp:       at,
	}, nil
}

// RestoreLedgerEntry reconstruye una entrada leída de persistencia (sin revalidar).
func RestoreLedgerEntry(id, storageCenterID, itemName string, itemCategory Category, quantity int, action string, at time.Time) *LedgerEntry {
	return &LedgerEntry{
		id:              id,
		storageCenterID: storageCenterID,
		itemName:        itemName,
		itemCategory:    itemCategory,
		quantity:        quantity,
		action:          action,
		timestamp:       at,
	}
}

func (e *LedgerEntry) ID() string              { return e.id }
func (e *LedgerEntry) StorageCenterID() string { return e.storageCenterID }
func (e *LedgerEntry) ItemName() string        { return e.itemName }
func (e *LedgerEntry) ItemCategory() Category  { return e.itemCategory }
func (e *LedgerEntry) Quantity() int           { return e.quantity }
func (e *LedgerEntry) Action() string          { return e.action }
func (e *LedgerEntry) Timestamp() time.Time    { return e.timestamp }

// Equal compara solo por ID.
func (e *LedgerEntry) Equal(other *LedgerEntry) bool {
	return other != nil && e.id == other.id
}
