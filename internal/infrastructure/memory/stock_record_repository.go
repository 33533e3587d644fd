package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación en memoria de StockRecordRepository.
// Dentro de Store.Run las escrituras ya están serializadas, por eso GetForUpdate equivale a Get.
type StockRecordRepo struct {
	read  func(func(*state))
	write func(func(*state))
}

func (r *StockRecordRepo) Get(_ context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error) {
	var out *entity.StockRecord
	r.read(func(st *state) {
		if rec, ok := st.stock[storageCenterID][identity]; ok {
			c := rec.Snapshot()
			out = &c
		}
	})
	return out, nil
}

func (r *StockRecordRepo) GetForUpdate(ctx context.Context, storageCenterID string, identity entity.ItemIdentity) (*entity.StockRecord, error) {
	return r.Get(ctx, storageCenterID, identity)
}

func (r *StockRecordRepo) Create(_ context.Context, record *entity.StockRecord) error {
	var err error
	r.write(func(st *state) {
		if _, ok := st.centers[record.StorageCenterID()]; !ok {
			err = domain.NotFoundf("centro de acopio %s", record.StorageCenterID())
			return
		}
		items, ok := st.stock[record.StorageCenterID()]
		if !ok {
			items = map[entity.ItemIdentity]entity.StockRecord{}
			st.stock[record.StorageCenterID()] = items
		}
		if _, exists := items[record.Identity()]; exists {
			err = domain.ErrConflict
			return
		}
		items[record.Identity()] = record.Snapshot()
	})
	return err
}

func (r *StockRecordRepo) Update(_ context.Context, record *entity.StockRecord) error {
	var err error
	r.write(func(st *state) {
		items := st.stock[record.StorageCenterID()]
		if _, ok := items[record.Identity()]; !ok {
			err = domain.NotFoundf("artículo %s no existe en el centro", record.Identity())
			return
		}
		items[record.Identity()] = record.Snapshot()
	})
	return err
}

func (r *StockRecordRepo) Delete(_ context.Context, storageCenterID string, identity entity.ItemIdentity) error {
	var err error
	r.write(func(st *state) {
		items := st.stock[storageCenterID]
		if _, ok := items[identity]; !ok {
			err = domain.NotFoundf("artículo %s no existe en el centro", identity)
			return
		}
		delete(items, identity)
	})
	return err
}

func (r *StockRecordRepo) ListByCenter(_ context.Context, storageCenterID string) ([]*entity.StockRecord, error) {
	return r.list(storageCenterID, func(*entity.StockRecord) bool { return true }), nil
}

func (r *StockRecordRepo) ListExpired(_ context.Context, storageCenterID string, asOf time.Time, _ bool) ([]*entity.StockRecord, error) {
	return r.list(storageCenterID, func(rec *entity.StockRecord) bool { return rec.IsExpired(asOf) }), nil
}

func (r *StockRecordRepo) list(storageCenterID string, keep func(*entity.StockRecord) bool) []*entity.StockRecord {
	list := []*entity.StockRecord{}
	r.read(func(st *state) {
		for _, rec := range st.stock[storageCenterID] {
			c := rec.Snapshot()
			if keep(&c) {
				list = append(list, &c)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Identity(), list[j].Identity()
		if a.Category() != b.Category() {
			return a.Category() < b.Category()
		}
		return a.Name() < b.Name()
	})
	return list
}
