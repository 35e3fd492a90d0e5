package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// WithdrawalUseCase operaciones sobre una sola salida. Crear y actualizar corren en una
// transacción que bloquea la fila del producto, de modo que el saldo nunca queda negativo.
type WithdrawalUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	withdrawalRepo repository.WithdrawalRepository
	validator      *validator.Validator
	now            func() time.Time
}

// NewWithdrawalUseCase construye el caso de uso.
func NewWithdrawalUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	withdrawalRepo repository.WithdrawalRepository,
	v *validator.Validator,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		withdrawalRepo: withdrawalRepo,
		validator:      v,
		now:            time.Now,
	}
}

// Create valida y registra una salida. Los rechazos se devuelven como *dto.RequestError.
func (uc *WithdrawalUseCase) Create(ctx context.Context, in dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
	in.Clean()
	var out *dto.WithdrawalResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		p := &withdrawalPipeline{
			products:    productRepo,
			withdrawals: withdrawalRepo,
			balance:     NewStockBalanceCalculator(entryRepo, withdrawalRepo),
			validator:   uc.validator,
			lockProduct: true,
			now:         uc.now,
		}
		ledger := inventory.NewStockLedger()
		v, se := p.evaluate(ctx, ledger, in)
		if se != nil {
			return stageToError(se)
		}
		w, se := p.commit(ctx, ledger, v)
		if se != nil {
			return stageToError(se)
		}
		out = dto.FromWithdrawal(w, v.product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifica título, cantidad y fecha. La nueva cantidad no puede exceder
// el saldo actual más la cantidad que la salida ya tenía reservada.
func (uc *WithdrawalUseCase) Update(ctx context.Context, id string, in dto.WithdrawalUpdateRequest) (*dto.WithdrawalResponse, error) {
	in.Clean()
	if errs := uc.validator.Validate(in); errs != nil {
		return nil, &dto.RequestError{Kind: domain.ErrInvalidInput, Errors: errs}
	}
	endTime, err := dto.ParseTimestamp(in.EndTime)
	if err != nil {
		return nil, dto.NewRequestError(domain.ErrInvalidInput, "endTime", "endTime debe ser una fecha válida (RFC 3339)")
	}
	id, ok := canonicalID(id)
	if !ok {
		return nil, dto.NewRequestError(domain.ErrNotFound, "id", "Salida no existente")
	}

	var out *dto.WithdrawalResponse
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error {
		existing, err := withdrawalRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return dto.NewRequestError(domain.ErrNotFound, "id", "Salida no existente")
		}
		product, err := productRepo.GetForUpdate(ctx, existing.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return dto.NewRequestError(domain.ErrNotFound, "productId", "Producto no existente")
		}

		available, err := NewStockBalanceCalculator(entryRepo, withdrawalRepo).Available(ctx, existing.ProductID)
		if err != nil {
			return err
		}
		available = available.Add(existing.Quantity)
		if in.Quantity.GreaterThan(available) {
			return dto.NewRequestError(domain.ErrInsufficientStock, "quantity",
				fmt.Sprintf("Stock insuficiente. Disponible: %s, Solicitado: %s", available.String(), in.Quantity.String()))
		}

		key := entity.WithdrawalKey{ProductID: existing.ProductID, Title: in.Title, Quantity: in.Quantity, EndTime: endTime}
		if !existing.Matches(key) {
			dup, err := withdrawalRepo.Exists(ctx, key)
			if err != nil {
				return err
			}
			if dup {
				return dto.NewRequestError(domain.ErrDuplicate, "general", "El registro de salida ya existe")
			}
		}

		existing.Title = in.Title
		existing.Quantity = in.Quantity
		existing.EndTime = endTime
		existing.UpdatedAt = uc.now().UTC()
		if err := withdrawalRepo.Update(ctx, existing); err != nil {
			return err
		}
		out = dto.FromWithdrawal(existing, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina la salida (sin registro compensatorio).
func (uc *WithdrawalUseCase) Delete(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return domain.ErrNotFound
	}
	return uc.withdrawalRepo.Delete(ctx, id)
}

// GetByID obtiene una salida con su producto; nil si no existe.
func (uc *WithdrawalUseCase) GetByID(ctx context.Context, id string) (*dto.WithdrawalResponse, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, nil
	}
	w, err := uc.withdrawalRepo.GetByID(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, w.ProductID)
	if err != nil {
		return nil, err
	}
	return dto.FromWithdrawal(w, product), nil
}

// List devuelve todas las salidas, más recientes primero.
func (uc *WithdrawalUseCase) List(ctx context.Context) (*dto.WithdrawalListResponse, error) {
	list, err := uc.withdrawalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *dto.FromWithdrawal(w, nil))
	}
	return &dto.WithdrawalListResponse{Items: items, Total: len(items)}, nil
}

// stageToError convierte una falla del pipeline en el error que devuelve la operación individual.
func stageToError(se *stageError) error {
	if isDomainKind(se.Kind) {
		return &dto.RequestError{Kind: se.Kind, Errors: se.Fields}
	}
	return se.Kind
}
