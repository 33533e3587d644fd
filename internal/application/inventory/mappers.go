package inventory

import (
	"time"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/domain/entity"
)

func toStockRecordResponse(r *entity.StockRecord, asOf time.Time) dto.StockRecordResponse {
	out := dto.StockRecordResponse{
		StorageCenterID: r.StorageCenterID(),
		Category:        r.Identity().Category().String(),
		Name:            r.Identity().Name(),
		Quantity:        r.Quantity(),
		Expired:         r.IsExpired(asOf),
		UpdatedAt:       r.UpdatedAt,
	}
	if exp := r.ExpirationDate(); exp != nil {
		s := exp.Format(dto.DateLayout)
		out.ExpirationDate = &s
	}
	return out
}

func toStockListResponse(records []*entity.StockRecord, asOf time.Time) *dto.StockListResponse {
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toStockRecordResponse(r, asOf))
	}
	return &dto.StockListResponse{Total: len(items), Items: items}
}

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:              e.ID(),
		StorageCenterID: e.StorageCenterID(),
		ItemCategory:    e.ItemCategory().String(),
		ItemName:        e.ItemName(),
		Quantity:        e.Quantity(),
		Action:          e.Action(),
		Timestamp:       e.Timestamp(),
	}
}
