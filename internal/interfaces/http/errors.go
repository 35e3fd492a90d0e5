package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// statusFor traduce un error de dominio a código HTTP y código de error de la API.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe {errors:[...]} para rechazos por campo y {code, message} para el resto.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var re *dto.RequestError
	if errors.As(err, &re) {
		status, _ := statusFor(re.Kind)
		return c.Status(status).JSON(dto.FieldErrorsResponse{Errors: re.Errors})
	}
	status, code := statusFor(err)
	msg := err.Error()
	switch status {
	case fiber.StatusNotFound:
		msg = notFoundMsg
	case fiber.StatusConflict:
		if errors.Is(err, domain.ErrConflict) {
			msg = "el recurso tiene movimientos asociados"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
