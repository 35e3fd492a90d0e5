// Package validator envuelve go-playground/validator con nombres de campo JSON,
// soporte para decimal.Decimal y mensajes en español.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError error de validación de un campo, en el formato que devuelve la API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator valida DTOs por sus etiquetas `validate`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Es seguro para uso concurrente.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	// decimal.Decimal se valida como número (gt, gte, lte...).
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{v: v}
}

// Validate devuelve los errores en el orden de los campos del struct, o nil si es válido.
func (cv *Validator) Validate(i interface{}) []FieldError {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "general", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: e.Field(), Message: message(e)})
	}
	return out
}

func message(e validator.FieldError) string {
	field := e.Field()
	text := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return field + " es requerido"
	case "min":
		if text {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, e.Param())
		}
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, e.Param())
	case "max":
		if text {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, e.Param())
		}
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, e.Param())
	case "len":
		return fmt.Sprintf("%s debe tener %s caracteres", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, e.Param())
	case "numeric":
		return field + " debe contener solo dígitos"
	case "uuid":
		return field + " debe ser un identificador válido"
	case "datetime":
		return field + " debe ser una fecha válida (RFC 3339)"
	default:
		return field + " es inválido"
	}
}
