package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/application/usecase"
)

// StorageCenterHandler maneja las peticiones HTTP para centros de acopio.
type StorageCenterHandler struct {
	uc *usecase.StorageCenterUseCase
}

// NewStorageCenterHandler construye el handler.
func NewStorageCenterHandler(uc *usecase.StorageCenterUseCase) *StorageCenterHandler {
	return &StorageCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro de acopio
// @Tags         storage-centers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageCenterRequest  true  "Datos del centro"
// @Success      201   {object}  dto.StorageCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/storage-centers [post]
func (h *StorageCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener centro por ID
// @Tags         storage-centers
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.StorageCenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id} [get]
func (h *StorageCenterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar centros
// @Tags         storage-centers
// @Produce      json
// @Param        organization_id  query  string  false  "Filtrar por organización"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StorageCenterListResponse
// @Router       /api/storage-centers [get]
func (h *StorageCenterHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.UserContext(), c.Query("organization_id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar centro
// @Tags         storage-centers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        body  body  dto.UpdateStorageCenterRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StorageCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id} [put]
func (h *StorageCenterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar centro (con su stock y su libro)
// @Tags         storage-centers
// @Param        id   path  string  true  "ID del centro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id} [delete]
func (h *StorageCenterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateDayHours godoc
// @Summary      Definir horario de un día
// @Tags         storage-centers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        day   path  int     true  "Día ISO (1 = lunes … 7 = domingo)"
// @Param        body  body  dto.DayHoursRequest  true  "open/close en HH:MM"
// @Success      200   {object}  dto.StorageCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/hours/{day} [put]
func (h *StorageCenterHandler) UpdateDayHours(c *fiber.Ctx) error {
	day, err := c.ParamsInt("day")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser un entero 1..7"})
	}
	var in dto.DayHoursRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateDayHours(c.UserContext(), c.Params("id"), day, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p.Limit, p.Offset
}
