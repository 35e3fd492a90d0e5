package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// entryPipeline evalúa una entrada: campos -> proveedor por RUC -> producto -> duplicado -> registro.
type entryPipeline struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	entries   repository.EntryRepository
	validator *validator.Validator
	// duplicateMessage difiere entre la operación individual y la masiva.
	duplicateField   string
	duplicateMessage string
	now              func() time.Time
}

type validatedEntry struct {
	product  *entity.Product
	supplier *entity.Supplier
	key      entity.EntryKey
}

func (p *entryPipeline) evaluate(ctx context.Context, req dto.EntryRequest) (*validatedEntry, *stageError) {
	if errs := p.validator.Validate(req); errs != nil {
		return nil, &stageError{Kind: domain.ErrInvalidInput, Fields: errs}
	}
	startTime, err := dto.ParseTimestamp(req.StartTime)
	if err != nil {
		return nil, fieldStageError(domain.ErrInvalidInput, "startTime", "startTime debe ser una fecha válida (RFC 3339)")
	}

	supplier, err := p.suppliers.GetByRUC(ctx, req.RUC)
	if err != nil {
		return nil, fieldStageError(fmt.Errorf("buscar proveedor: %w", err), "general",
			"Error al validar el registro: "+err.Error())
	}
	if supplier == nil {
		return nil, fieldStageError(domain.ErrNotFound, "ruc", "RUC no existente")
	}

	productID, ok := canonicalID(req.ProductID)
	if !ok {
		return nil, fieldStageError(domain.ErrNotFound, "productId", "Producto no existente")
	}
	product, err := p.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fieldStageError(fmt.Errorf("buscar producto: %w", err), "general",
			"Error al validar el registro: "+err.Error())
	}
	if product == nil {
		return nil, fieldStageError(domain.ErrNotFound, "productId", "Producto no existente")
	}

	key := entity.EntryKey{
		ProductID:  productID,
		SupplierID: supplier.ID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		StartTime:  startTime,
	}
	exists, err := p.entries.Exists(ctx, key)
	if err != nil {
		return nil, fieldStageError(fmt.Errorf("buscar duplicado: %w", err), "general",
			"Error al validar el registro: "+err.Error())
	}
	if exists {
		return nil, fieldStageError(domain.ErrDuplicate, p.duplicateField, p.duplicateMessage)
	}
	return &validatedEntry{product: product, supplier: supplier, key: key}, nil
}

func (p *entryPipeline) commit(ctx context.Context, v *validatedEntry) (*entity.Entry, *stageError) {
	now := p.now().UTC()
	e := &entity.Entry{
		ID:         uuid.New().String(),
		ProductID:  v.key.ProductID,
		SupplierID: v.key.SupplierID,
		Quantity:   v.key.Quantity,
		Price:      v.key.Price,
		StartTime:  v.key.StartTime,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.entries.Create(ctx, e); err != nil {
		return nil, fieldStageError(fmt.Errorf("crear entrada: %w", err), "general",
			"Error al crear el registro: "+err.Error())
	}
	return e, nil
}
