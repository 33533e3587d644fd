package http

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Donaciones-api/internal/application/dto"
	"github.com/jhoicas/Donaciones-api/internal/application/inventory"
	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// InventoryHandler maneja ingresos, salidas, vencimientos y el libro de movimientos de un centro.
type InventoryHandler struct {
	stock   *inventory.StockUseCase
	report  *inventory.ReportUseCase
	retries int
}

// NewInventoryHandler construye el handler. retries es el número de reintentos ante conflicto de concurrencia.
func NewInventoryHandler(stock *inventory.StockUseCase, report *inventory.ReportUseCase, retries int) *InventoryHandler {
	if retries < 0 {
		retries = 0
	}
	return &InventoryHandler{stock: stock, report: report, retries: retries}
}

// CheckIn godoc
// @Summary      Registrar ingreso de donación
// @Description  Suma la cantidad al registro (centro, categoría, nombre) creándolo si no existe y agrega un movimiento "Check In" al libro.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        body  body  dto.CheckInRequest  true  "Artículo y cantidad"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/check-in [post]
func (h *InventoryHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var out *dto.StockMovementResponse
	err := retryOnConflict(h.retries, func() error {
		var err error
		out, err = h.stock.CheckInFromRequest(c.UserContext(), c.Params("id"), in)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckOut godoc
// @Summary      Registrar salida (entrega) de donación
// @Description  Resta la cantidad del registro; si llega a cero el registro se elimina. Agrega un movimiento "Check Out".
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro"
// @Param        body  body  dto.CheckOutRequest  true  "Artículo y cantidad"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/check-out [post]
func (h *InventoryHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var out *dto.StockMovementResponse
	err := retryOnConflict(h.retries, func() error {
		var err error
		out, err = h.stock.CheckOutFromRequest(c.UserContext(), c.Params("id"), in)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Trasladar artículo a otro centro
// @Description  Check Out en el centro origen y Check In en el destino, en una sola transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del centro origen"
// @Param        body  body  dto.TransferRequest  true  "Destino, artículo y cantidad"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var out *dto.TransferResponse
	err := retryOnConflict(h.retries, func() error {
		var err error
		out, err = h.stock.TransferFromRequest(c.UserContext(), c.Params("id"), in)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Existencias del centro
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del centro"
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.stock.ListItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Existencia de un artículo
// @Tags         inventory
// @Produce      json
// @Param        id        path  string  true  "ID del centro"
// @Param        category  path  string  true  "FOOD | TOILETRIES | CLOTHING"
// @Param        name      path  string  true  "Nombre del artículo"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/items/{category}/{name} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	category, err := pathParam(c, "category")
	if err != nil {
		return writeError(c, err)
	}
	name, err := pathParam(c, "name")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.GetItem(c.UserContext(), c.Params("id"), category, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListExpired godoc
// @Summary      Artículos vencidos
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del centro"
// @Param        as_of  query  string  false  "Fecha de referencia yyyy-MM-dd (por defecto hoy)"
// @Success      200    {object}  dto.StockListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/items/expired [get]
func (h *InventoryHandler) ListExpired(c *fiber.Ctx) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.ListExpiredItems(c.UserContext(), c.Params("id"), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveExpired godoc
// @Summary      Dar de baja artículos vencidos
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del centro"
// @Param        as_of  query  string  false  "Fecha de referencia yyyy-MM-dd (por defecto hoy)"
// @Success      200    {object}  dto.ExpiredRemovalResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/items/expired [delete]
func (h *InventoryHandler) RemoveExpired(c *fiber.Ctx) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	var out *dto.ExpiredRemovalResponse
	err = retryOnConflict(h.retries, func() error {
		var err error
		out, err = h.stock.RemoveExpiredItems(c.UserContext(), c.Params("id"), asOf)
		return err
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Libro de movimientos del centro
// @Description  Movimientos del más reciente al más antiguo; from/to filtran por fecha (inclusive).
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del centro"
// @Param        from    query  string  false  "Desde yyyy-MM-dd"
// @Param        to      query  string  false  "Hasta yyyy-MM-dd"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.LedgerListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	from, err := inventory.ParseDate(c.Query("from"))
	if err != nil {
		return writeError(c, err)
	}
	to, err := inventory.ParseDate(c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	if to != nil {
		// "to" es inclusivo: se extiende hasta el final del día
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	limit, offset := pagination(c)
	out, err := h.stock.ListTransactions(c.UserContext(), c.Params("id"), from, to, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Param        id     path   string  true   "ID del centro"
// @Param        as_of  query  string  false  "Fecha de referencia yyyy-MM-dd (por defecto hoy)"
// @Success      200    {file}    file
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/storage-centers/{id}/report.pdf [get]
func (h *InventoryHandler) ReportPDF(c *fiber.Ctx) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.report.InventoryPDF(c.UserContext(), c.Params("id"), asOf)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

func asOfQuery(c *fiber.Ctx) (time.Time, error) {
	t, err := inventory.ParseDate(c.Query("as_of"))
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Now().UTC(), nil
	}
	return *t, nil
}

// pathParam devuelve el parámetro de ruta decodificado ("Canned%20Beans" -> "Canned Beans").
// Fiber lo entrega tal como llegó en la URL.
func pathParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", domain.Invalidf("parámetro %s mal codificado", key)
	}
	return v, nil
}
