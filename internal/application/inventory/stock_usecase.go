package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase consulta el saldo disponible de un producto.
type StockUseCase struct {
	productRepo repository.ProductRepository
	balance     *StockBalanceCalculator
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	withdrawalRepo repository.WithdrawalRepository,
) *StockUseCase {
	return &StockUseCase{
		productRepo: productRepo,
		balance:     NewStockBalanceCalculator(entryRepo, withdrawalRepo),
	}
}

// GetStock devuelve entradas, salidas y disponible. domain.ErrNotFound si el producto no existe.
func (uc *StockUseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	id, ok := canonicalID(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	in, out, err := uc.balance.Totals(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:   id,
		Entries:     in,
		Withdrawals: out,
		Available:   in.Sub(out),
	}, nil
}
