package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// stageError falla de una etapa del pipeline de salidas.
// Kind clasifica el error; un Kind que no es de dominio indica falla de persistencia.
type stageError struct {
	Kind      error
	Fields    []validator.FieldError
	Available *decimal.Decimal
	Requested *decimal.Decimal
}

func fieldStageError(kind error, field, message string) *stageError {
	return &stageError{Kind: kind, Fields: []validator.FieldError{{Field: field, Message: message}}}
}

// withdrawalPipeline evalúa una solicitud de salida en etapas que cortan en la primera falla:
// campos -> producto existente -> stock suficiente -> duplicado -> registro.
type withdrawalPipeline struct {
	products    repository.ProductRepository
	withdrawals repository.WithdrawalRepository
	balance     *StockBalanceCalculator
	validator   *validator.Validator
	// lockProduct usa SELECT FOR UPDATE en la etapa de producto (solo dentro de una tx).
	lockProduct bool
	now         func() time.Time
}

// validated solicitud que superó las etapas 1 a 4.
type validated struct {
	product *entity.Product
	key     entity.WithdrawalKey
}

// evaluate ejecuta las etapas 1 a 4 contra el ledger. Si el producto no está sembrado en el
// ledger se siembra con su saldo actual (operaciones individuales).
func (p *withdrawalPipeline) evaluate(ctx context.Context, ledger *inventory.StockLedger, req dto.WithdrawalRequest) (*validated, *stageError) {
	// 1. Campos
	if errs := p.validator.Validate(req); errs != nil {
		return nil, &stageError{Kind: domain.ErrInvalidInput, Fields: errs}
	}
	endTime, err := dto.ParseTimestamp(req.EndTime)
	if err != nil {
		return nil, fieldStageError(domain.ErrInvalidInput, "endTime", "endTime debe ser una fecha válida (RFC 3339)")
	}

	// 2. Producto existente
	productID, ok := canonicalID(req.ProductID)
	if !ok {
		return nil, fieldStageError(domain.ErrNotFound, "productId", "Producto no existente")
	}
	var product *entity.Product
	if p.lockProduct {
		product, err = p.products.GetForUpdate(ctx, productID)
	} else {
		product, err = p.products.GetByID(ctx, productID)
	}
	if err != nil {
		return nil, fieldStageError(fmt.Errorf("buscar producto: %w", err), "general",
			"Error al validar el registro: "+err.Error())
	}
	if product == nil {
		return nil, fieldStageError(domain.ErrNotFound, "productId", "Producto no existente")
	}

	// 3. Stock suficiente contra el saldo vivo del lote
	if !ledger.Tracks(productID) {
		available, err := p.balance.Available(ctx, productID)
		if err != nil {
			return nil, fieldStageError(err, "general", "Error al validar el registro: "+err.Error())
		}
		ledger.Seed(productID, available)
	}
	if !ledger.CanWithdraw(productID, req.Quantity) {
		available := ledger.Available(productID)
		requested := req.Quantity
		se := fieldStageError(domain.ErrInsufficientStock, "quantity",
			fmt.Sprintf("Stock insuficiente. Disponible: %s, Solicitado: %s", available.String(), requested.String()))
		se.Available = &available
		se.Requested = &requested
		return nil, se
	}

	// 4. Duplicado contra salidas registradas antes del lote: las que el propio lote
	// registró no cuentan.
	key := entity.WithdrawalKey{
		ProductID: productID,
		Title:     req.Title,
		Quantity:  req.Quantity,
		EndTime:   endTime,
	}
	persisted, err := p.withdrawals.CountMatching(ctx, key)
	if err != nil {
		return nil, fieldStageError(fmt.Errorf("buscar duplicado: %w", err), "general",
			"Error al validar el registro: "+err.Error())
	}
	if persisted > ledger.CommittedMatching(key) {
		return nil, fieldStageError(domain.ErrDuplicate, "general", "El registro de salida ya existe")
	}

	return &validated{product: product, key: key}, nil
}

// commit registra la salida y descuenta el ledger solo si la escritura tuvo éxito.
func (p *withdrawalPipeline) commit(ctx context.Context, ledger *inventory.StockLedger, v *validated) (*entity.Withdrawal, *stageError) {
	now := p.now().UTC()
	w := &entity.Withdrawal{
		ID:        uuid.New().String(),
		ProductID: v.key.ProductID,
		Title:     v.key.Title,
		Quantity:  v.key.Quantity,
		EndTime:   v.key.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.withdrawals.Create(ctx, w); err != nil {
		return nil, fieldStageError(fmt.Errorf("crear salida: %w", err), "general",
			"Error al crear el registro: "+err.Error())
	}
	ledger.Record(v.key)
	return w, nil
}

// isDomainKind indica si la falla es una regla de negocio y no un error de infraestructura.
func isDomainKind(err error) bool {
	for _, k := range []error{
		domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrDuplicate,
		domain.ErrInsufficientStock, domain.ErrConflict,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
