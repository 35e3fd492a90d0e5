package entity

import "time"

// Product representa un material del catálogo del almacén.
// No se elimina mientras tenga entradas o salidas registradas.
type Product struct {
	ID                string
	Title             string
	Description       *string
	UnitOfMeasurement string
	MaterialType      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
