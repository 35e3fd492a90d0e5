package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest entrada de stock; el proveedor se indica por RUC.
type EntryRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	RUC       string          `json:"ruc" validate:"required,len=11,numeric"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	StartTime string          `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Clean normaliza los textos de la solicitud.
func (r *EntryRequest) Clean() {
	r.ProductID = CleanText(r.ProductID)
	r.RUC = CleanText(r.RUC)
	r.StartTime = CleanText(r.StartTime)
}

// EntryUpdateRequest campos modificables de una entrada.
type EntryUpdateRequest struct {
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	StartTime string          `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// EntryResponse salida de una entrada, con proveedor y producto cuando están disponibles.
type EntryResponse struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"productId"`
	SupplierID string            `json:"supplierId"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	StartTime  time.Time         `json:"startTime"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Supplier   *SupplierResponse `json:"supplier,omitempty"`
	Product    *ProductResponse  `json:"product,omitempty"`
}

// EntryListResponse lista de entradas (más recientes primero).
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
}

// BulkEntryRequest body para POST /api/entries/bulk.
type BulkEntryRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// BulkEntryError error de una entrada del lote.
type BulkEntryError struct {
	Index     int    `json:"index"`
	Field     string `json:"field"`
	Message   string `json:"message"`
	RUC       string `json:"ruc,omitempty"`
	ProductID string `json:"productId,omitempty"`
}

// BulkEntryResult resultado de una posición: Entry o Errors, nunca ambos.
type BulkEntryResult struct {
	Entry  *EntryResponse   `json:"entry,omitempty"`
	Errors []BulkEntryError `json:"errors,omitempty"`
}

// BulkEntryResponse respuesta de la carga masiva de entradas.
type BulkEntryResponse struct {
	Results      []BulkEntryResult `json:"results"`
	Total        int               `json:"total"`
	SuccessCount int               `json:"successCount"`
	ErrorCount   int               `json:"errorCount"`
}
