package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockLedger acumula el stock disponible por producto durante una sola ejecución
// de un lote. Se crea al inicio del lote y se descarta al final; no es compartido.
// También recuerda las salidas que el propio lote registró, para que la detección de
// duplicados compare solo contra lo que existía antes del lote.
type StockLedger struct {
	available map[string]decimal.Decimal
	committed map[string][]entity.WithdrawalKey
}

// NewStockLedger crea un ledger vacío.
func NewStockLedger() *StockLedger {
	return &StockLedger{
		available: make(map[string]decimal.Decimal),
		committed: make(map[string][]entity.WithdrawalKey),
	}
}

// Seed fija el saldo inicial de un producto.
func (l *StockLedger) Seed(productID string, qty decimal.Decimal) {
	l.available[productID] = qty
}

// Tracks indica si el producto tiene saldo sembrado.
func (l *StockLedger) Tracks(productID string) bool {
	_, ok := l.available[productID]
	return ok
}

// Available devuelve el saldo actual; cero si el producto no fue sembrado.
func (l *StockLedger) Available(productID string) decimal.Decimal {
	return l.available[productID]
}

// CanWithdraw indica si qty no excede el saldo actual del producto.
func (l *StockLedger) CanWithdraw(productID string, qty decimal.Decimal) bool {
	return qty.LessThanOrEqual(l.Available(productID))
}

// Withdraw descuenta qty del saldo. El llamador valida antes con CanWithdraw.
func (l *StockLedger) Withdraw(productID string, qty decimal.Decimal) {
	l.available[productID] = l.Available(productID).Sub(qty)
}

// Record descuenta la salida registrada y la anota como parte del lote.
func (l *StockLedger) Record(key entity.WithdrawalKey) {
	l.Withdraw(key.ProductID, key.Quantity)
	l.committed[key.ProductID] = append(l.committed[key.ProductID], key)
}

// CommittedMatching cuenta las salidas registradas por este lote con la misma tupla.
func (l *StockLedger) CommittedMatching(key entity.WithdrawalKey) int {
	n := 0
	for _, k := range l.committed[key.ProductID] {
		if k.Equal(key) {
			n++
		}
	}
	return n
}
