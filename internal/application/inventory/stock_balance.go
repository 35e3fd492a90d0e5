package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockBalanceCalculator calcula el stock disponible de un producto como
// Σ entradas − Σ salidas sobre todo el historial. Nunca cachea.
type StockBalanceCalculator struct {
	entryRepo      repository.EntryRepository
	withdrawalRepo repository.WithdrawalRepository
}

// NewStockBalanceCalculator construye el calculador.
func NewStockBalanceCalculator(
	entryRepo repository.EntryRepository,
	withdrawalRepo repository.WithdrawalRepository,
) *StockBalanceCalculator {
	return &StockBalanceCalculator{entryRepo: entryRepo, withdrawalRepo: withdrawalRepo}
}

// Totals devuelve la suma de entradas y de salidas del producto.
func (c *StockBalanceCalculator) Totals(ctx context.Context, productID string) (in, out decimal.Decimal, err error) {
	in, err = c.entryRepo.SumQuantity(ctx, productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sumar entradas: %w", err)
	}
	out, err = c.withdrawalRepo.SumQuantity(ctx, productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sumar salidas: %w", err)
	}
	return in, out, nil
}

// Available devuelve entradas − salidas. Sin movimientos el saldo es cero.
func (c *StockBalanceCalculator) Available(ctx context.Context, productID string) (decimal.Decimal, error) {
	in, out, err := c.Totals(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return in.Sub(out), nil
}

// Snapshot siembra un StockLedger con un cálculo por producto distinto (no por solicitud).
// Los identificadores que no son UUID se omiten: no pueden existir en el catálogo.
func (c *StockBalanceCalculator) Snapshot(ctx context.Context, productIDs []string) (*inventory.StockLedger, error) {
	ledger := inventory.NewStockLedger()
	for _, id := range productIDs {
		id, ok := canonicalID(id)
		if !ok || ledger.Tracks(id) {
			continue
		}
		available, err := c.Available(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("stock de %s: %w", id, err)
		}
		ledger.Seed(id, available)
	}
	return ledger, nil
}
