package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// ProductUseCase casos de uso CRUD del catálogo de productos. El stock no vive en el
// producto: se deriva de entradas y salidas.
type ProductUseCase struct {
	repo      repository.ProductRepository
	validator *validator.Validator
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, v *validator.Validator) *ProductUseCase {
	return &ProductUseCase{repo: repo, validator: v, now: time.Now}
}

// Create crea un producto. El título no puede repetirse.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Clean()
	if errs := uc.validator.Validate(in); errs != nil {
		return nil, &dto.RequestError{Kind: domain.ErrInvalidInput, Errors: errs}
	}
	existing, err := uc.repo.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateTitle()
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Title:             in.Title,
		Description:       in.Description,
		UnitOfMeasurement: in.UnitOfMeasurement,
		MaterialType:      in.MaterialType,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicateTitle()
		}
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// CreateBulk crea varios productos; cada uno se valida y registra por separado.
// Una lista vacía es un error del lote (índice -1).
func (uc *ProductUseCase) CreateBulk(ctx context.Context, in dto.BulkProductRequest) (*dto.ProductBulkResponse, error) {
	out := &dto.ProductBulkResponse{Results: make([]dto.BulkProductItemResponse, 0, len(in.Products))}
	if len(in.Products) == 0 {
		out.Errors = []dto.ProductBulkError{{Index: -1, Field: "products", Message: "Debe enviar al menos un producto"}}
		return out, domain.ErrInvalidInput
	}
	for i, req := range in.Products {
		p, err := uc.Create(ctx, req)
		if err == nil {
			out.TotalCreated++
			out.Results = append(out.Results, dto.BulkProductItemResponse{Index: i, Product: p})
			continue
		}
		be := dto.ProductBulkError{Index: i, Field: "general", Message: "Error al crear el registro: " + err.Error()}
		var re *dto.RequestError
		if errors.As(err, &re) && len(re.Errors) > 0 {
			be.Field, be.Message = re.Errors[0].Field, re.Errors[0].Message
		}
		out.TotalFailed++
		out.Errors = append(out.Errors, be)
		out.Results = append(out.Results, dto.BulkProductItemResponse{Index: i, Error: &be})
	}
	return out, nil
}

// GetByID obtiene un producto; nil si no existe o el id no es un UUID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	product, err := uc.repo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// Update reemplaza los atributos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Clean()
	if errs := uc.validator.Validate(in); errs != nil {
		return nil, &dto.RequestError{Kind: domain.ErrInvalidInput, Errors: errs}
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != product.Title {
		other, err := uc.repo.GetByTitle(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, duplicateTitle()
		}
	}
	product.Title = in.Title
	product.Description = in.Description
	product.UnitOfMeasurement = in.UnitOfMeasurement
	product.MaterialType = in.MaterialType
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un producto. domain.ErrConflict si tiene movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, parsed.String())
}

func duplicateTitle() *dto.RequestError {
	return dto.NewRequestError(domain.ErrDuplicate, "title", "El producto ya existe")
}
