package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación en memoria del libro de movimientos (solo anexar).
type LedgerRepo struct {
	read  func(func(*state))
	write func(func(*state))
}

func (r *LedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	var err error
	r.write(func(st *state) {
		for _, e := range st.ledger {
			if e.Equal(entry) {
				err = domain.ErrDuplicate
				return
			}
		}
		st.ledger = append(st.ledger, entry)
	})
	return err
}

func (r *LedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	r.read(func(st *state) {
		for _, e := range st.ledger {
			if e.ID() == id {
				out = e
				return
			}
		}
	})
	return out, nil
}

func (r *LedgerRepo) ListByCenter(_ context.Context, storageCenterID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	r.read(func(st *state) {
		for _, e := range st.ledger {
			if e.StorageCenterID() != storageCenterID {
				continue
			}
			if from != nil && e.Timestamp().Before(*from) {
				continue
			}
			if to != nil && e.Timestamp().After(*to) {
				continue
			}
			list = append(list, e)
		}
	})
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp().After(list[j].Timestamp())
	})
	return page(list, limit, offset), nil
}
