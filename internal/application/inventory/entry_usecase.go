package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// EntryUseCase operaciones sobre una sola entrada de stock.
type EntryUseCase struct {
	pipeline     *entryPipeline
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	entryRepo    repository.EntryRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	entryRepo repository.EntryRepository,
	v *validator.Validator,
) *EntryUseCase {
	return &EntryUseCase{
		pipeline: &entryPipeline{
			products:         productRepo,
			suppliers:        supplierRepo,
			entries:          entryRepo,
			validator:        v,
			duplicateField:   "ruc",
			duplicateMessage: "Producto entrada se ha creado anteriormente",
			now:              time.Now,
		},
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		entryRepo:    entryRepo,
	}
}

// Create registra una entrada. Los rechazos se devuelven como *dto.RequestError.
func (uc *EntryUseCase) Create(ctx context.Context, in dto.EntryRequest) (*dto.EntryResponse, error) {
	in.Clean()
	v, se := uc.pipeline.evaluate(ctx, in)
	if se != nil {
		return nil, stageToError(se)
	}
	e, se := uc.pipeline.commit(ctx, v)
	if se != nil {
		return nil, stageToError(se)
	}
	return dto.FromEntry(e, v.supplier, v.product), nil
}

// Update modifica cantidad, precio y fecha de la entrada.
func (uc *EntryUseCase) Update(ctx context.Context, id string, in dto.EntryUpdateRequest) (*dto.EntryResponse, error) {
	in.StartTime = dto.CleanText(in.StartTime)
	if errs := uc.pipeline.validator.Validate(in); errs != nil {
		return nil, &dto.RequestError{Kind: domain.ErrInvalidInput, Errors: errs}
	}
	startTime, err := dto.ParseTimestamp(in.StartTime)
	if err != nil {
		return nil, dto.NewRequestError(domain.ErrInvalidInput, "startTime", "startTime debe ser una fecha válida (RFC 3339)")
	}
	id, ok := canonicalID(id)
	if !ok {
		return nil, dto.NewRequestError(domain.ErrNotFound, "id", "Producto entrada no existente")
	}
	existing, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, dto.NewRequestError(domain.ErrNotFound, "id", "Producto entrada no existente")
	}

	key := entity.EntryKey{
		ProductID:  existing.ProductID,
		SupplierID: existing.SupplierID,
		Quantity:   in.Quantity,
		Price:      in.Price,
		StartTime:  startTime,
	}
	if !existing.Matches(key) {
		dup, err := uc.entryRepo.Exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, dto.NewRequestError(domain.ErrDuplicate, "general", "El registro ya existe")
		}
	}

	existing.Quantity = in.Quantity
	existing.Price = in.Price
	existing.StartTime = startTime
	existing.UpdatedAt = uc.pipeline.now().UTC()
	if err := uc.entryRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return uc.withRelations(ctx, existing)
}

// Delete elimina la entrada (sin registro compensatorio).
func (uc *EntryUseCase) Delete(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return domain.ErrNotFound
	}
	return uc.entryRepo.Delete(ctx, id)
}

// GetByID obtiene una entrada con proveedor y producto; nil si no existe.
func (uc *EntryUseCase) GetByID(ctx context.Context, id string) (*dto.EntryResponse, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, nil
	}
	e, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil || e == nil {
		return nil, err
	}
	return uc.withRelations(ctx, e)
}

// List devuelve todas las entradas, más recientes primero.
func (uc *EntryUseCase) List(ctx context.Context) (*dto.EntryListResponse, error) {
	list, err := uc.entryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.FromEntry(e, nil, nil))
	}
	return &dto.EntryListResponse{Items: items, Total: len(items)}, nil
}

func (uc *EntryUseCase) withRelations(ctx context.Context, e *entity.Entry) (*dto.EntryResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, e.SupplierID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, e.ProductID)
	if err != nil {
		return nil, err
	}
	return dto.FromEntry(e, supplier, product), nil
}
