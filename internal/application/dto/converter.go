package dto

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// FromProduct convierte una entidad Product a su respuesta.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		UnitOfMeasurement: p.UnitOfMeasurement,
		MaterialType:      p.MaterialType,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromSupplier convierte una entidad Supplier a su respuesta.
func FromSupplier(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		RUC:        s.RUC,
		District:   s.District,
		Province:   s.Province,
		Department: s.Department,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromEntry convierte una entrada; supplier y product pueden ser nil.
func FromEntry(e *entity.Entry, supplier *entity.Supplier, product *entity.Product) *EntryResponse {
	if e == nil {
		return nil
	}
	return &EntryResponse{
		ID:         e.ID,
		ProductID:  e.ProductID,
		SupplierID: e.SupplierID,
		Quantity:   e.Quantity,
		Price:      e.Price,
		StartTime:  e.StartTime,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Supplier:   FromSupplier(supplier),
		Product:    FromProduct(product),
	}
}

// FromWithdrawal convierte una salida; product puede ser nil.
func FromWithdrawal(w *entity.Withdrawal, product *entity.Product) *WithdrawalResponse {
	if w == nil {
		return nil
	}
	return &WithdrawalResponse{
		ID:        w.ID,
		ProductID: w.ProductID,
		Title:     w.Title,
		Quantity:  w.Quantity,
		EndTime:   w.EndTime,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Product:   FromProduct(product),
	}
}
