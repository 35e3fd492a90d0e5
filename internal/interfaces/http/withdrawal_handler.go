package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

const withdrawalNotFound = "salida no encontrada"

// WithdrawalHandler maneja las salidas de stock, individuales y en lote.
type WithdrawalHandler struct {
	uc   *inventory.WithdrawalUseCase
	bulk *inventory.BulkWithdrawalUseCase
}

// NewWithdrawalHandler construye el handler.
func NewWithdrawalHandler(uc *inventory.WithdrawalUseCase, bulk *inventory.BulkWithdrawalUseCase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc, bulk: bulk}
}

// Create godoc
// @Summary      Registrar salida
// @Description  Rechaza la salida si excede el stock disponible del producto.
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawalRequest  true  "productId, title, quantity, endTime"
// @Success      201   {object}  dto.WithdrawalResponse
// @Failure      400   {object}  dto.FieldErrorsResponse
// @Failure      404   {object}  dto.FieldErrorsResponse
// @Failure      409   {object}  dto.FieldErrorsResponse
// @Router       /api/withdrawals [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	var in dto.WithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Registrar salidas en lote
// @Description  Cada salida se procesa en orden contra el stock disponible del lote, descontando
// @Description  las salidas ya aceptadas. Responde 200 aunque algunas fallen.
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkWithdrawalRequest  true  "Lista de salidas"
// @Success      200   {object}  dto.BulkWithdrawalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/withdrawals/bulk [post]
func (h *WithdrawalHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.BulkWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.bulk.CreateBulk(c.Context(), in)
	if err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener salida
// @Tags         withdrawals
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.WithdrawalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id} [get]
func (h *WithdrawalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: withdrawalNotFound})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar salidas
// @Tags         withdrawals
// @Produce      json
// @Success      200  {object}  dto.WithdrawalListResponse
// @Router       /api/withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar salida
// @Tags         withdrawals
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.WithdrawalUpdateRequest  true  "title, quantity, endTime"
// @Success      200   {object}  dto.WithdrawalResponse
// @Failure      400   {object}  dto.FieldErrorsResponse
// @Failure      404   {object}  dto.FieldErrorsResponse
// @Router       /api/withdrawals/{id} [put]
func (h *WithdrawalHandler) Update(c *fiber.Ctx) error {
	var in dto.WithdrawalUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar salida
// @Tags         withdrawals
// @Param        id   path  string  true  "ID de la salida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawals/{id} [delete]
func (h *WithdrawalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, withdrawalNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
