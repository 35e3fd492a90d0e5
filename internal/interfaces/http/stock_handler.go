package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// StockHandler consultas de saldo y kardex por producto.
type StockHandler struct {
	stock  *inventory.StockUseCase
	kardex *inventory.KardexUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, kardex *inventory.KardexUseCase) *StockHandler {
	return &StockHandler{stock: stock, kardex: kardex}
}

// GetStock godoc
// @Summary      Stock disponible de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.stock.GetStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// GetKardex godoc
// @Summary      Kardex de un producto
// @Description  Movimientos ordenados por fecha con saldo y costo promedio ponderado.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.KardexResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/kardex [get]
func (h *StockHandler) GetKardex(c *fiber.Ctx) error {
	out, err := h.kardex.Build(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, productNotFound)
	}
	return c.JSON(out)
}

// GetKardexPDF godoc
// @Summary      Kardex de un producto en PDF
// @Tags         products
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/kardex/pdf [get]
func (h *StockHandler) GetKardexPDF(c *fiber.Ctx) error {
	b, filename, err := h.kardex.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, productNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}
