package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

var _ repository.StorageCenterRepository = (*StorageCenterRepo)(nil)

// StorageCenterRepo implementación en memoria de StorageCenterRepository.
type StorageCenterRepo struct {
	read  func(func(*state))
	write func(func(*state))
}

func (r *StorageCenterRepo) Create(_ context.Context, center *entity.StorageCenter) error {
	var err error
	r.write(func(st *state) {
		if _, ok := st.centers[center.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		st.centers[center.ID] = cloneCenter(center)
	})
	return err
}

func (r *StorageCenterRepo) GetByID(_ context.Context, id string) (*entity.StorageCenter, error) {
	var out *entity.StorageCenter
	r.read(func(st *state) {
		if c, ok := st.centers[id]; ok {
			out = cloneCenter(c)
		}
	})
	return out, nil
}

// Update cambia nombre y descripción conservando el horario almacenado.
func (r *StorageCenterRepo) Update(_ context.Context, center *entity.StorageCenter) error {
	var err error
	r.write(func(st *state) {
		stored, ok := st.centers[center.ID]
		if !ok {
			err = domain.NotFoundf("centro de acopio %s", center.ID)
			return
		}
		next := cloneCenter(stored)
		next.Name = center.Name
		next.Description = center.Description
		next.UpdatedAt = center.UpdatedAt
		st.centers[center.ID] = next
	})
	return err
}

func (r *StorageCenterRepo) SetDayHours(_ context.Context, id string, day entity.DayOfWeek, hours entity.TimeRange, updatedAt time.Time) error {
	var err error
	r.write(func(st *state) {
		c, ok := st.centers[id]
		if !ok {
			err = domain.NotFoundf("centro de acopio %s", id)
			return
		}
		next := cloneCenter(c)
		if err = next.UpdateDayHours(hours, day); err != nil {
			return
		}
		next.UpdatedAt = updatedAt
		st.centers[id] = next
	})
	return err
}

func (r *StorageCenterRepo) List(_ context.Context, organizationID string, limit, offset int) ([]*entity.StorageCenter, error) {
	var list []*entity.StorageCenter
	r.read(func(st *state) {
		for _, c := range st.centers {
			if organizationID != "" && c.OrganizationID != organizationID {
				continue
			}
			list = append(list, cloneCenter(c))
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), nil
}

// Delete elimina el centro con su stock y su libro.
func (r *StorageCenterRepo) Delete(_ context.Context, id string) error {
	r.write(func(st *state) {
		delete(st.centers, id)
		delete(st.stock, id)
		kept := st.ledger[:0:0]
		for _, e := range st.ledger {
			if e.StorageCenterID() != id {
				kept = append(kept, e)
			}
		}
		st.ledger = kept
	})
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
