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

// BulkWithdrawalUseCase procesa un lote de salidas como intentos independientes, en orden,
// contra un ledger de stock sembrado al inicio del lote. No es transaccional: cada
// salida válida queda registrada aunque otras del lote fallen.
//
// Dos solicitudes idénticas dentro del mismo lote no se rechazan como duplicadas: la
// detección solo mira salidas ya persistidas antes de cada intento.
type BulkWithdrawalUseCase struct {
	pipeline *withdrawalPipeline
	maxItems int
	log      zerolog.Logger
}

// NewBulkWithdrawalUseCase construye el caso de uso. maxItems <= 0 desactiva el límite.
func NewBulkWithdrawalUseCase(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	withdrawalRepo repository.WithdrawalRepository,
	v *validator.Validator,
	maxItems int,
	log zerolog.Logger,
) *BulkWithdrawalUseCase {
	return &BulkWithdrawalUseCase{
		pipeline: &withdrawalPipeline{
			products:    productRepo,
			withdrawals: withdrawalRepo,
			balance:     NewStockBalanceCalculator(entryRepo, withdrawalRepo),
			validator:   v,
			now:         time.Now,
		},
		maxItems: maxItems,
		log:      log,
	}
}

// CreateBulk devuelve un resultado por solicitud, en el orden de entrada.
// Solo falla el lote completo si excede el límite o si no se puede calcular el stock inicial.
func (uc *BulkWithdrawalUseCase) CreateBulk(ctx context.Context, in dto.BulkWithdrawalRequest) (*dto.BulkWithdrawalResponse, error) {
	if uc.maxItems > 0 && len(in.Withdrawals) > uc.maxItems {
		return nil, fmt.Errorf("%w: el lote tiene %d salidas, máximo %d", domain.ErrInvalidInput, len(in.Withdrawals), uc.maxItems)
	}

	reqs := make([]dto.WithdrawalRequest, len(in.Withdrawals))
	ids := make([]string, 0, len(in.Withdrawals))
	for i, r := range in.Withdrawals {
		r.Clean()
		reqs[i] = r
		ids = append(ids, r.ProductID)
	}

	ledger, err := uc.pipeline.balance.Snapshot(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("calcular stock del lote: %w", err)
	}

	out := &dto.BulkWithdrawalResponse{
		Results: make([]dto.BulkWithdrawalResult, 0, len(reqs)),
		Total:   len(reqs),
	}
	for i, req := range reqs {
		v, se := uc.pipeline.evaluate(ctx, ledger, req)
		if se == nil {
			w, cerr := uc.pipeline.commit(ctx, ledger, v)
			if cerr == nil {
				out.SuccessCount++
				out.Results = append(out.Results, dto.BulkWithdrawalResult{
					Withdrawal: dto.FromWithdrawal(w, v.product),
				})
				continue
			}
			se = cerr
		}
		if !isDomainKind(se.Kind) {
			uc.log.Error().Err(se.Kind).Int("index", i).Str("product_id", req.ProductID).
				Msg("salida masiva: registro fallido")
		}
		out.ErrorCount++
		out.Results = append(out.Results, dto.BulkWithdrawalResult{Errors: bulkErrors(i, req.ProductID, se)})
	}

	uc.log.Info().Int("total", out.Total).Int("success", out.SuccessCount).Int("errors", out.ErrorCount).
		Msg("salida masiva procesada")
	return out, nil
}

func bulkErrors(index int, productID string, se *stageError) []dto.BulkWithdrawalError {
	out := make([]dto.BulkWithdrawalError, 0, len(se.Fields))
	for _, f := range se.Fields {
		out = append(out, dto.BulkWithdrawalError{
			Index:     index,
			Field:     f.Field,
			Message:   f.Message,
			ProductID: productID,
			Available: se.Available,
			Requested: se.Requested,
		})
	}
	return out
}
