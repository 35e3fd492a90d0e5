package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest solicitud de salida de stock.
type WithdrawalRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Title     string          `json:"title" validate:"required,min=4,max=255"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	EndTime   string          `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Clean normaliza los textos de la solicitud.
func (r *WithdrawalRequest) Clean() {
	r.ProductID = CleanText(r.ProductID)
	r.Title = CleanText(r.Title)
	r.EndTime = CleanText(r.EndTime)
}

// WithdrawalUpdateRequest campos modificables de una salida.
type WithdrawalUpdateRequest struct {
	Title    string          `json:"title" validate:"required,min=4,max=255"`
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
	EndTime  string          `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Clean normaliza los textos de la solicitud.
func (r *WithdrawalUpdateRequest) Clean() {
	r.Title = CleanText(r.Title)
	r.EndTime = CleanText(r.EndTime)
}

// WithdrawalResponse salida de una salida de stock, con su producto.
type WithdrawalResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Title     string           `json:"title"`
	Quantity  decimal.Decimal  `json:"quantity"`
	EndTime   time.Time        `json:"endTime"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// WithdrawalListResponse lista de salidas (más recientes primero).
type WithdrawalListResponse struct {
	Items []WithdrawalResponse `json:"items"`
	Total int                  `json:"total"`
}

// BulkWithdrawalRequest body para POST /api/withdrawals/bulk.
type BulkWithdrawalRequest struct {
	Withdrawals []WithdrawalRequest `json:"withdrawals"`
}

// BulkWithdrawalError error de una salida del lote. Available/Requested solo en stock insuficiente.
type BulkWithdrawalError struct {
	Index     int              `json:"index"`
	Field     string           `json:"field"`
	Message   string           `json:"message"`
	ProductID string           `json:"productId,omitempty"`
	Available *decimal.Decimal `json:"available,omitempty"`
	Requested *decimal.Decimal `json:"requested,omitempty"`
}

// BulkWithdrawalResult resultado de una posición: Withdrawal o Errors, nunca ambos.
type BulkWithdrawalResult struct {
	Withdrawal *WithdrawalResponse   `json:"withdrawal,omitempty"`
	Errors     []BulkWithdrawalError `json:"errors,omitempty"`
}

// BulkWithdrawalResponse respuesta de la salida masiva.
type BulkWithdrawalResponse struct {
	Results      []BulkWithdrawalResult `json:"results"`
	Total        int                    `json:"total"`
	SuccessCount int                    `json:"successCount"`
	ErrorCount   int                    `json:"errorCount"`
}
