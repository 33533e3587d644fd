package dto

import "time"

// DateLayout formato de fechas de vencimiento en el cable (ISO-8601 yyyy-MM-dd).
const DateLayout = "2006-01-02"

// CheckInRequest body para POST /api/storage-centers/:id/check-in.
type CheckInRequest struct {
	Category       string `json:"category"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	ExpirationDate string `json:"expiration_date,omitempty"` // yyyy-MM-dd, opcional
}

// CheckOutRequest body para POST /api/storage-centers/:id/check-out.
type CheckOutRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TransferRequest body para POST /api/storage-centers/:id/transfer.
type TransferRequest struct {
	ToStorageCenterID string `json:"to_storage_center_id"`
	Category          string `json:"category"`
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
}

// StockRecordResponse existencia de un artículo en un centro.
type StockRecordResponse struct {
	StorageCenterID string    `json:"storage_center_id"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	ExpirationDate  *string   `json:"expiration_date,omitempty"`
	Expired         bool      `json:"expired"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StockListResponse existencias de un centro.
type StockListResponse struct {
	Total int                   `json:"total"`
	Items []StockRecordResponse `json:"items"`
}

// LedgerEntryResponse movimiento del libro.
type LedgerEntryResponse struct {
	ID              string    `json:"id"`
	StorageCenterID string    `json:"storage_center_id"`
	ItemCategory    string    `json:"item_category"`
	ItemName        string    `json:"item_name"`
	Quantity        int       `json:"quantity"`
	Action          string    `json:"action"`
	Timestamp       time.Time `json:"timestamp"`
}

// LedgerListResponse lista paginada de movimientos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StockMovementResponse resultado de un ingreso o retiro.
// Depleted indica que el registro llegó a cero y fue eliminado.
type StockMovementResponse struct {
	Item        StockRecordResponse `json:"item"`
	Depleted    bool                `json:"depleted"`
	Transaction LedgerEntryResponse `json:"transaction"`
}

// TransferResponse resultado de un traslado entre centros.
type TransferResponse struct {
	Out StockMovementResponse `json:"out"`
	In  StockMovementResponse `json:"in"`
}

// ExpiredRemovalResponse resultado de la baja de vencidos.
type ExpiredRemovalResponse struct {
	Removed      int                   `json:"removed"`
	Items        []StockRecordResponse `json:"items"`
	Transactions []LedgerEntryResponse `json:"transactions"`
}
