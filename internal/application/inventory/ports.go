package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.EntryRepository,
		withdrawalRepo repository.WithdrawalRepository,
	) error) error
}

// KardexPDFGenerator renderiza el kardex de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, kardex *dto.KardexResponse) ([]byte, error)
}
