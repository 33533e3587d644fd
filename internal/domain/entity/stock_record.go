package entity

import (
	"math"
	"strings"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// MaxQuantity es la existencia máxima de un registro (columna INTEGER en PostgreSQL).
const MaxQuantity = math.MaxInt32

// StockRecord representa la existencia actual de un artículo en un centro de acopio.
// Hay a lo sumo un registro por (centro, identidad). La cantidad nunca es negativa:
// solo cambia a través de IncrementQuantity / DecrementQuantity.
type StockRecord struct {
	identity        ItemIdentity
	quantity        int
	storageCenterID string
	expirationDate  *time.Time
	UpdatedAt       time.Time
}

// NewStockRecord valida y construye un registro. Se aceptan fechas de vencimiento pasadas
// (carga de lotes ya vencidos); el filtrado por vencimiento se hace al consultar.
func NewStockRecord(identity ItemIdentity, quantity int, storageCenterID string, expirationDate *time.Time) (*StockRecord, error) {
	if identity.IsZero() {
		return nil, domain.Invalidf("la identidad del artículo es requerida")
	}
	if strings.TrimSpace(storageCenterID) == "" {
		return nil, domain.Invalidf("el centro de acopio es requerido")
	}
	if quantity < 0 {
		return nil, domain.Invalidf("la cantidad no puede ser negativa (%d)", quantity)
	}
	if quantity > MaxQuantity {
		return nil, domain.Invalidf("la cantidad supera el máximo permitido (%d)", MaxQuantity)
	}
	return &StockRecord{
		identity:        identity,
		quantity:        quantity,
		storageCenterID: storageCenterID,
		expirationDate:  copyTime(expirationDate),
	}, nil
}

func (s *StockRecord) Identity() ItemIdentity     { return s.identity }
func (s *StockRecord) Quantity() int              { return s.quantity }
func (s *StockRecord) StorageCenterID() string    { return s.storageCenterID }
func (s *StockRecord) ExpirationDate() *time.Time { return copyTime(s.expirationDate) }

// IncrementQuantity suma amount (> 0) a la existencia sin pasar de MaxQuantity.
func (s *StockRecord) IncrementQuantity(amount int) error {
	if amount <= 0 {
		return domain.Invalidf("la cantidad a ingresar debe ser positiva (%d)", amount)
	}
	if amount > MaxQuantity-s.quantity {
		return domain.Invalidf("la existencia de %s superaría el máximo permitido (%d)", s.identity, MaxQuantity)
	}
	s.quantity += amount
	return nil
}

// DecrementQuantity resta amount (> 0). Si amount supera la existencia falla sin modificarla.
func (s *StockRecord) DecrementQuantity(amount int) error {
	if amount <= 0 {
		return domain.Invalidf("la cantidad a retirar debe ser positiva (%d)", amount)
	}
	if amount > s.quantity {
		return domain.Invalidf("stock insuficiente para %s: disponible %d, solicitado %d", s.identity, s.quantity, amount)
	}
	s.quantity -= amount
	return nil
}

// SetStorageCenter traslada el registro a otro centro.
func (s *StockRecord) SetStorageCenter(storageCenterID string) error {
	if strings.TrimSpace(storageCenterID) == "" {
		return domain.Invalidf("el centro de acopio es requerido")
	}
	s.storageCenterID = storageCenterID
	return nil
}

// SetExpirationDate reemplaza la fecha de vencimiento (nil = sin vencimiento).
func (s *StockRecord) SetExpirationDate(t *time.Time) {
	s.expirationDate = copyTime(t)
}

// IsExpired es verdadero si hay fecha de vencimiento y es estrictamente anterior al día de asOf.
// Se compara por fecha calendario (el día de asOf en UTC): un lote que vence hoy sigue vigente durante todo el día.
func (s *StockRecord) IsExpired(asOf time.Time) bool {
	if s.expirationDate == nil {
		return false
	}
	asOf = asOf.UTC()
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	exp := s.expirationDate
	return time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC).Before(day)
}

// Snapshot devuelve una copia independiente del registro.
func (s *StockRecord) Snapshot() StockRecord {
	c := *s
	c.expirationDate = copyTime(s.expirationDate)
	return c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
