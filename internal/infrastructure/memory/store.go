// Package memory implementa los puertos de persistencia en memoria.
// Sirve para desarrollo local (STORAGE_DRIVER=memory) y para los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state es la foto completa de los datos; cada transacción trabaja sobre una copia.
type state struct {
	centers map[string]*entity.StorageCenter
	stock   map[string]map[entity.ItemIdentity]entity.StockRecord
	ledger  []*entity.LedgerEntry
}

func newState() *state {
	return &state{
		centers: map[string]*entity.StorageCenter{},
		stock:   map[string]map[entity.ItemIdentity]entity.StockRecord{},
	}
}

// clone copia mapas y slices; las entradas del libro son inmutables y se comparten.
func (s *state) clone() *state {
	c := &state{
		centers: make(map[string]*entity.StorageCenter, len(s.centers)),
		stock:   make(map[string]map[entity.ItemIdentity]entity.StockRecord, len(s.stock)),
		ledger:  make([]*entity.LedgerEntry, len(s.ledger)),
	}
	for id, center := range s.centers {
		c.centers[id] = cloneCenter(center)
	}
	for centerID, items := range s.stock {
		m := make(map[entity.ItemIdentity]entity.StockRecord, len(items))
		for k, v := range items {
			m[k] = v.Snapshot()
		}
		c.stock[centerID] = m
	}
	copy(c.ledger, s.ledger)
	return c
}

// Store guarda el estado y serializa las escrituras.
// Run trabaja sobre una copia y solo la publica si fn termina sin error (Commit/Rollback).
type Store struct {
	writeMu sync.Mutex   // una escritura (tx o directa) a la vez
	mu      sync.RWMutex // protege st
	st      *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia del estado.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	tx := func(f func(*state)) { f(work) }
	if err := fn(&StockRecordRepo{read: tx, write: tx}, &LedgerRepo{read: tx, write: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// StorageCenters devuelve el repositorio de centros sobre el almacén.
func (s *Store) StorageCenters() *StorageCenterRepo {
	return &StorageCenterRepo{read: s.view, write: s.update}
}

// StockRecords devuelve el repositorio de stock fuera de transacción.
func (s *Store) StockRecords() *StockRecordRepo {
	return &StockRecordRepo{read: s.view, write: s.update}
}

// Ledger devuelve el repositorio del libro fuera de transacción.
func (s *Store) Ledger() *LedgerRepo {
	return &LedgerRepo{read: s.view, write: s.update}
}

func (s *Store) view(f func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(s.st)
}

func (s *Store) update(f func(*state)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.st)
}

func cloneCenter(c *entity.StorageCenter) *entity.StorageCenter {
	out := *c
	out.Hours = make(map[entity.DayOfWeek]entity.TimeRange, len(c.Hours))
	for d, r := range c.Hours {
		out.Hours[d] = r
	}
	return &out
}
