package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WithdrawalRepository define el puerto del libro de salidas.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entity.Withdrawal, error)
	// Update modifica solo title, quantity y endTime.
	Update(ctx context.Context, withdrawal *entity.Withdrawal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Withdrawal, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Withdrawal, error)
	// SumQuantity devuelve 0 si el producto no tiene salidas.
	SumQuantity(ctx context.Context, productID string) (decimal.Decimal, error)
	Exists(ctx context.Context, key entity.WithdrawalKey) (bool, error)
	// CountMatching cuenta las salidas registradas con la misma tupla (producto, título, cantidad, fecha).
	CountMatching(ctx context.Context, key entity.WithdrawalKey) (int, error)
}
