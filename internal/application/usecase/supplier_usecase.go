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

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo      repository.SupplierRepository
	validator *validator.Validator
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, v *validator.Validator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, validator: v}
}

// Create registra un proveedor; el RUC es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	in.Clean()
	if errs := uc.validator.Validate(in); errs != nil {
		return nil, &dto.RequestError{Kind: domain.ErrInvalidInput, Errors: errs}
	}
	existing, err := uc.repo.GetByRUC(ctx, in.RUC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dto.NewRequestError(domain.ErrDuplicate, "ruc", "El RUC ya está registrado")
	}
	now := time.Now().UTC()
	s := &entity.Supplier{
		ID:         uuid.New().String(),
		Name:       in.Name,
		RUC:        in.RUC,
		District:   in.District,
		Province:   in.Province,
		Department: in.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, dto.NewRequestError(domain.ErrDuplicate, "ruc", "El RUC ya está registrado")
		}
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// GetByID obtiene un proveedor; nil si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	s, err := uc.repo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// List lista los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.FromSupplier(s))
	}
	return &dto.SupplierListResponse{Items: items, Total: len(items)}, nil
}
