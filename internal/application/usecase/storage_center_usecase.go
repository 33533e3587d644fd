package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/domain"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
	"github.com/jhoicas/Donaciones-api/internal/domain/repository"
)

// StorageCenterUseCase casos de uso CRUD para centros de acopio.
type StorageCenterUseCase struct {
	repo repository.StorageCenterRepository
}

// NewStorageCenterUseCase construye el caso de uso.
func NewStorageCenterUseCase(repo repository.StorageCenterRepository) *StorageCenterUseCase {
	return &StorageCenterUseCase{repo: repo}
}

// Create crea un nuevo centro.
func (uc *StorageCenterUseCase) Create(ctx context.Context, in dto.CreateStorageCenterRequest) (*dto.StorageCenterResponse, error) {
	center, err := entity.NewStorageCenter(in.OrganizationID, in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	center.ID = uuid.New().String()
	center.CreatedAt = now
	center.UpdatedAt = now
	if err := uc.repo.Create(ctx, center); err != nil {
		return nil, err
	}
	return toStorageCenterResponse(center), nil
}

// GetByID obtiene un centro por ID; domain.ErrNotFound si no existe.
func (uc *StorageCenterUseCase) GetByID(ctx context.Context, id string) (*dto.StorageCenterResponse, error) {
	center, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStorageCenterResponse(center), nil
}

// Update actualiza nombre y/o descripción.
func (uc *StorageCenterUseCase) Update(ctx context.Context, id string, in dto.UpdateStorageCenterRequest) (*dto.StorageCenterResponse, error) {
	center, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := center.Rename(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := center.Describe(*in.Description); err != nil {
			return nil, err
		}
	}
	center.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, center); err != nil {
		return nil, err
	}
	return toStorageCenterResponse(center), nil
}

// UpdateDayHours reemplaza el horario de un día (1 = lunes … 7 = domingo).
func (uc *StorageCenterUseCase) UpdateDayHours(ctx context.Context, id string, day int, in dto.DayHoursRequest) (*dto.StorageCenterResponse, error) {
	open, err := entity.ParseClockTime(in.Open)
	if err != nil {
		return nil, err
	}
	closing, err := entity.ParseClockTime(in.Close)
	if err != nil {
		return nil, err
	}
	dow := entity.DayOfWeek(day)
	if !dow.Valid() {
		return nil, domain.Invalidf("día de la semana inválido: %d (1..7)", day)
	}
	hours := entity.TimeRange{Start: open, End: closing}
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	// Solo se escribe el día pedido; los demás quedan como estén en el almacén.
	if err := uc.repo.SetDayHours(ctx, id, dow, hours, time.Now()); err != nil {
		return nil, err
	}
	center, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStorageCenterResponse(center), nil
}

// List lista centros (opcionalmente de una organización) con paginación.
func (uc *StorageCenterUseCase) List(ctx context.Context, organizationID string, limit, offset int) (*dto.StorageCenterListResponse, error) {
	list, err := uc.repo.List(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageCenterResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toStorageCenterResponse(c))
	}
	return &dto.StorageCenterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un centro; su stock y su libro se borran en cascada.
func (uc *StorageCenterUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StorageCenterUseCase) get(ctx context.Context, id string) (*entity.StorageCenter, error) {
	center, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, domain.NotFoundf("centro de acopio %s", id)
	}
	return center, nil
}

func toStorageCenterResponse(c *entity.StorageCenter) *dto.StorageCenterResponse {
	if c == nil {
		return nil
	}
	hours := make([]dto.DayHoursResponse, 0, len(c.Hours))
	for _, d := range c.Days() {
		r := c.Hours[d]
		hours = append(hours, dto.DayHoursResponse{
			Day:     int(d),
			DayName: d.String(),
			Open:    r.Start.String(),
			Close:   r.End.String(),
		})
	}
	return &dto.StorageCenterResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Description:    c.Description,
		Hours:          hours,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
