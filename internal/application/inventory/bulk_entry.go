package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// BulkEntryUseCase registra un lote de entradas como intentos independientes, en orden.
// Igual que las salidas masivas, no es transaccional.
type BulkEntryUseCase struct {
	pipeline *entryPipeline
	maxItems int
	log      zerolog.Logger
}

// NewBulkEntryUseCase construye el caso de uso. maxItems <= 0 desactiva el límite.
func NewBulkEntryUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	entryRepo repository.EntryRepository,
	v *validator.Validator,
	maxItems int,
	log zerolog.Logger,
) *BulkEntryUseCase {
	return &BulkEntryUseCase{
		pipeline: &entryPipeline{
			products:         productRepo,
			suppliers:        supplierRepo,
			entries:          entryRepo,
			validator:        v,
			duplicateField:   "general",
			duplicateMessage: "El registro ya existe",
			now:              time.Now,
		},
		maxItems: maxItems,
		log:      log,
	}
}

// CreateBulk devuelve un resultado por entrada, en el orden recibido.
func (uc *BulkEntryUseCase) CreateBulk(ctx context.Context, in dto.BulkEntryRequest) (*dto.BulkEntryResponse, error) {
	if uc.maxItems > 0 && len(in.Entries) > uc.maxItems {
		return nil, fmt.Errorf("%w: el lote tiene %d entradas, máximo %d", domain.ErrInvalidInput, len(in.Entries), uc.maxItems)
	}

	out := &dto.BulkEntryResponse{
		Results: make([]dto.BulkEntryResult, 0, len(in.Entries)),
		Total:   len(in.Entries),
	}
	for i, req := range in.Entries {
		req.Clean()
		v, se := uc.pipeline.evaluate(ctx, req)
		if se == nil {
			e, cerr := uc.pipeline.commit(ctx, v)
			if cerr == nil {
				out.SuccessCount++
				out.Results = append(out.Results, dto.BulkEntryResult{
					Entry: dto.FromEntry(e, v.supplier, v.product),
				})
				continue
			}
			se = cerr
		}
		if !isDomainKind(se.Kind) {
			uc.log.Error().Err(se.Kind).Int("index", i).Str("ruc", req.RUC).Str("product_id", req.ProductID).
				Msg("entrada masiva: registro fallido")
		}
		errs := make([]dto.BulkEntryError, 0, len(se.Fields))
		for _, f := range se.Fields {
			errs = append(errs, dto.BulkEntryError{
				Index:     i,
				Field:     f.Field,
				Message:   f.Message,
				RUC:       req.RUC,
				ProductID: req.ProductID,
			})
		}
		out.ErrorCount++
		out.Results = append(out.Results, dto.BulkEntryResult{Errors: errs})
	}

	uc.log.Info().Int("total", out.Total).Int("success", out.SuccessCount).Int("errors", out.ErrorCount).
		Msg("entrada masiva procesada")
	return out, nil
}
