package dto

import "time"

// SupplierRequest entrada para registrar un proveedor.
type SupplierRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	RUC        string `json:"ruc" validate:"required,len=11,numeric"`
	District   string `json:"district" validate:"max=255"`
	Province   string `json:"province" validate:"max=255"`
	Department string `json:"department" validate:"max=255"`
}

// Clean normaliza los textos de la solicitud.
func (r *SupplierRequest) Clean() {
	r.Name = CleanText(r.Name)
	r.RUC = CleanText(r.RUC)
	r.District = CleanText(r.District)
	r.Province = CleanText(r.Province)
	r.Department = CleanText(r.Department)
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RUC        string    `json:"ruc"`
	District   string    `json:"district,omitempty"`
	Province   string    `json:"province,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SupplierListResponse lista de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Total int                `json:"total"`
}
