package dto

import "time"

// CreateStorageCenterRequest entrada para crear un centro de acopio.
type CreateStorageCenterRequest struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"required"`
}

// UpdateStorageCenterRequest entrada para actualizar un centro.
type UpdateStorageCenterRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// DayHoursRequest body para PUT /api/storage-centers/:id/hours/:day.
type DayHoursRequest struct {
	Open  string `json:"open"`  // HH:MM
	Close string `json:"close"` // HH:MM
}

// DayHoursResponse horario de un día.
type DayHoursResponse struct {
	Day     int    `json:"day"` // 1 = lunes … 7 = domingo
	DayName string `json:"day_name"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// StorageCenterResponse salida de un centro.
type StorageCenterResponse struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id,omitempty"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Hours          []DayHoursResponse `json:"hours"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// StorageCenterListResponse lista paginada de centros.
type StorageCenterListResponse struct {
	Items []StorageCenterResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
