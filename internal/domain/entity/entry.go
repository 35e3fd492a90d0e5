package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry representa un ingreso de stock de un producto entregado por un proveedor.
type Entry struct {
	ID         string
	ProductID  string
	SupplierID string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	StartTime  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntryKey es la tupla que identifica una entrada duplicada.
type EntryKey struct {
	ProductID  string
	SupplierID string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	StartTime  time.Time
}

// Key devuelve la tupla de unicidad de la entrada.
func (e *Entry) Key() EntryKey {
	return EntryKey{
		ProductID:  e.ProductID,
		SupplierID: e.SupplierID,
		Quantity:   e.Quantity,
		Price:      e.Price,
		StartTime:  e.StartTime,
	}
}

// Matches indica si la entrada coincide exactamente con la tupla.
// Montos por igualdad decimal (10 == 10.00) y fechas por instante.
func (e *Entry) Matches(k EntryKey) bool {
	return e.ProductID == k.ProductID &&
		e.SupplierID == k.SupplierID &&
		e.Quantity.Equal(k.Quantity) &&
		e.Price.Equal(k.Price) &&
		e.StartTime.Equal(k.StartTime)
}
