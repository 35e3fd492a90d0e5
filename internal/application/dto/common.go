package dto

import "github.com/jhoicas/Almacen-api/pkg/validator"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrorsResponse errores por campo de una operación sobre un solo registro.
type FieldErrorsResponse struct {
	Errors []validator.FieldError `json:"errors"`
}

// RequestError errores por campo de una operación individual. Kind es el error de
// dominio que los clasifica (ErrInvalidInput, ErrNotFound, ErrDuplicate...).
type RequestError struct {
	Kind   error
	Errors []validator.FieldError
}

// NewRequestError crea un RequestError de un solo campo.
func NewRequestError(kind error, field, message string) *RequestError {
	return &RequestError{Kind: kind, Errors: []validator.FieldError{{Field: field, Message: message}}}
}

func (e *RequestError) Error() string {
	if len(e.Errors) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Errors[0].Field + ": " + e.Errors[0].Message
}

func (e *RequestError) Unwrap() error { return e.Kind }
