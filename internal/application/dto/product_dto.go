package dto

import "time"

// ProductRequest entrada para crear o actualizar un producto.
type ProductRequest struct {
	Title             string  `json:"title" validate:"required,min=4,max=255"`
	Description       *string `json:"description" validate:"omitempty,min=4,max=255"`
	UnitOfMeasurement string  `json:"unitOfMeasurement" validate:"required,min=2,max=255"`
	MaterialType      string  `json:"materialType" validate:"required,min=2,max=255"`
}

// Clean normaliza los textos de la solicitud.
func (r *ProductRequest) Clean() {
	r.Title = CleanText(r.Title)
	r.Description = CleanOptional(r.Description)
	r.UnitOfMeasurement = CleanText(r.UnitOfMeasurement)
	r.MaterialType = CleanText(r.MaterialType)
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description"`
	UnitOfMeasurement string    `json:"unitOfMeasurement"`
	MaterialType      string    `json:"materialType"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// BulkProductRequest body para POST /api/products/bulk.
type BulkProductRequest struct {
	Products []ProductRequest `json:"products"`
}

// ProductBulkError error de un producto dentro de un lote. Index -1 = error del lote.
type ProductBulkError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BulkProductItemResponse resultado por posición del lote.
type BulkProductItemResponse struct {
	Index   int               `json:"index"`
	Product *ProductResponse  `json:"product,omitempty"`
	Error   *ProductBulkError `json:"error,omitempty"`
}

// ProductBulkResponse respuesta de la carga masiva de productos.
type ProductBulkResponse struct {
	Errors       []ProductBulkError        `json:"errors,omitempty"`
	Results      []BulkProductItemResponse `json:"results"`
	TotalCreated int                       `json:"totalCreated"`
	TotalFailed  int                       `json:"totalFailed"`
}
