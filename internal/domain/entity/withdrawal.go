package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal representa una salida de stock de un producto.
type Withdrawal struct {
	ID        string
	ProductID string
	Title     string
	Quantity  decimal.Decimal
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithdrawalKey es la tupla que identifica una salida duplicada.
type WithdrawalKey struct {
	ProductID string
	Title     string
	Quantity  decimal.Decimal
	EndTime   time.Time
}

// Key devuelve la tupla de unicidad de la salida.
func (w *Withdrawal) Key() WithdrawalKey {
	return WithdrawalKey{
		ProductID: w.ProductID,
		Title:     w.Title,
		Quantity:  w.Quantity,
		EndTime:   w.EndTime,
	}
}

// Matches indica si la salida coincide exactamente con la tupla.
func (w *Withdrawal) Matches(k WithdrawalKey) bool {
	return w.ProductID == k.ProductID &&
		w.Title == k.Title &&
		w.Quantity.Equal(k.Quantity) &&
		w.EndTime.Equal(k.EndTime)
}

// Equal compara dos tuplas con el mismo criterio que Matches.
func (k WithdrawalKey) Equal(o WithdrawalKey) bool {
	return k.ProductID == o.ProductID &&
		k.Title == o.Title &&
		k.Quantity.Equal(o.Quantity) &&
		k.EndTime.Equal(o.EndTime)
}
