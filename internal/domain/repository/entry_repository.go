package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// EntryRepository define el puerto del libro de entradas.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	// Update modifica solo quantity, price y startTime.
	Update(ctx context.Context, entry *entity.Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Entry, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Entry, error)
	// SumQuantity devuelve 0 si el producto no tiene entradas.
	SumQuantity(ctx context.Context, productID string) (decimal.Decimal, error)
	Exists(ctx context.Context, key entity.EntryKey) (bool, error)
}
