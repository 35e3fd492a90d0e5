package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse saldo disponible de un producto (entradas - salidas).
type StockResponse struct {
	ProductID   string          `json:"productId"`
	Entries     decimal.Decimal `json:"entries"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Available   decimal.Decimal `json:"available"`
}

// Tipos de línea del kardex.
const (
	KardexIn  = "IN"
	KardexOut = "OUT"
)

// KardexLine movimiento del kardex con saldo acumulado.
type KardexLine struct {
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	ReferenceID string          `json:"referenceId"`
	Detail      string          `json:"detail"`
	In          decimal.Decimal `json:"in"`
	Out         decimal.Decimal `json:"out"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Balance     decimal.Decimal `json:"balance"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// KardexResponse tarjeta de control de stock de un producto.
type KardexResponse struct {
	Product     ProductResponse `json:"product"`
	Lines       []KardexLine    `json:"lines"`
	TotalIn     decimal.Decimal `json:"totalIn"`
	TotalOut    decimal.Decimal `json:"totalOut"`
	Balance     decimal.Decimal `json:"balance"`
	AverageCost decimal.Decimal `json:"averageCost"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
