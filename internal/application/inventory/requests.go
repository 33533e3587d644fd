package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// CheckInFromRequest adapta el request HTTP al caso de uso CheckIn(ctx, CheckInInput).
func (uc *StockUseCase) CheckInFromRequest(ctx context.Context, centerID string, in dto.CheckInRequest) (*dto.StockMovementResponse, error) {
	exp, err := ParseDate(in.ExpirationDate)
	if err != nil {
		return nil, err
	}
	return uc.CheckIn(ctx, CheckInInput{
		StorageCenterID: centerID,
		Category:        in.Category,
		Name:            in.Name,
		Quantity:        in.Quantity,
		ExpirationDate:  exp,
	})
}

// CheckOutFromRequest adapta el request HTTP al caso de uso CheckOut(ctx, CheckOutInput).
func (uc *StockUseCase) CheckOutFromRequest(ctx context.Context, centerID string, in dto.CheckOutRequest) (*dto.StockMovementResponse, error) {
	return uc.CheckOut(ctx, CheckOutInput{
		StorageCenterID: centerID,
		Category:        in.Category,
		Name:            in.Name,
		Quantity:        in.Quantity,
	})
}

// TransferFromRequest adapta el request HTTP al caso de uso TransferItem.
func (uc *StockUseCase) TransferFromRequest(ctx context.Context, fromCenterID string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	return uc.TransferItem(ctx, TransferInput{
		FromStorageCenterID: fromCenterID,
		ToStorageCenterID:   in.ToStorageCenterID,
		Category:            in.Category,
		Name:                in.Name,
		Quantity:            in.Quantity,
	})
}

// ParseDate interpreta una fecha yyyy-MM-dd (UTC). Cadena vacía = sin fecha (nil).
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, domain.Invalidf("fecha inválida %q, formato esperado yyyy-MM-dd", s)
	}
	return &t, nil
}
