package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

const entryNotFound = "entrada no encontrada"

// EntryHandler maneja las entradas de stock, individuales y en lote.
type EntryHandler struct {
	uc   *inventory.EntryUseCase
	bulk *inventory.BulkEntryUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *inventory.EntryUseCase, bulk *inventory.BulkEntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc, bulk: bulk}
}

// Create godoc
// @Summary      Registrar entrada
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "productId, ruc, quantity, price, startTime"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.FieldErrorsResponse
// @Failure      404   {object}  dto.FieldErrorsResponse
// @Failure      409   {object}  dto.FieldErrorsResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, entryNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Registrar entradas en lote
// @Description  Cada entrada se procesa por separado; responde 200 aunque algunas fallen.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkEntryRequest  true  "Lista de entradas"
// @Success      200   {object}  dto.BulkEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/entries/bulk [post]
func (h *EntryHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.bulk.CreateBulk(c.Context(), in)
	if err != nil {
		return respondError(c, err, entryNotFound)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada
// @Tags         entries
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, entryNotFound)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: entryNotFound})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Produce      json
// @Success      200  {object}  dto.EntryListResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, entryNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar entrada
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada"
// @Param        body  body  dto.EntryUpdateRequest  true  "quantity, price, startTime"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.FieldErrorsResponse
// @Failure      404   {object}  dto.FieldErrorsResponse
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	var in dto.EntryUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, entryNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada
// @Tags         entries
// @Param        id   path  string  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, entryNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
