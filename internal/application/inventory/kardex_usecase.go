package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// KardexUseCase arma la tarjeta de control (kardex) de un producto.
type KardexUseCase struct {
	productRepo    repository.ProductRepository
	supplierRepo   repository.SupplierRepository
	entryRepo      repository.EntryRepository
	withdrawalRepo repository.WithdrawalRepository
	pdfGen         KardexPDFGenerator
	now            func() time.Time
}

// NewKardexUseCase construye el caso de uso. pdfGen puede ser nil si no se exporta PDF.
func NewKardexUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	entryRepo repository.EntryRepository,
	withdrawalRepo repository.WithdrawalRepository,
	pdfGen KardexPDFGenerator,
) *KardexUseCase {
	return &KardexUseCase{
		productRepo:    productRepo,
		supplierRepo:   supplierRepo,
		entryRepo:      entryRepo,
		withdrawalRepo: withdrawalRepo,
		pdfGen:         pdfGen,
		now:            time.Now,
	}
}

// Build lista los movimientos ordenados por fecha (entradas primero en empate) con saldo
// y costo promedio ponderado acumulados.
func (uc *KardexUseCase) Build(ctx context.Context, productID string) (*dto.KardexResponse, error) {
	id, ok := canonicalID(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	entries, err := uc.entryRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listar entradas: %w", err)
	}
	withdrawals, err := uc.withdrawalRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listar salidas: %w", err)
	}

	suppliers := map[string]string{}
	lines := make([]dto.KardexLine, 0, len(entries)+len(withdrawals))
	for _, e := range entries {
		name, ok := suppliers[e.SupplierID]
		if !ok {
			s, err := uc.supplierRepo.GetByID(ctx, e.SupplierID)
			if err != nil {
				return nil, fmt.Errorf("buscar proveedor: %w", err)
			}
			if s != nil {
				name = s.Name
			}
			suppliers[e.SupplierID] = name
		}
		lines = append(lines, dto.KardexLine{
			Date:        e.StartTime,
			Type:        dto.KardexIn,
			ReferenceID: e.ID,
			Detail:      name,
			In:          e.Quantity,
			Out:         decimal.Zero,
			UnitPrice:   e.Price,
		})
	}
	for _, w := range withdrawals {
		lines = append(lines, dto.KardexLine{
			Date:        w.EndTime,
			Type:        dto.KardexOut,
			ReferenceID: w.ID,
			Detail:      w.Title,
			In:          decimal.Zero,
			Out:         w.Quantity,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].Type == dto.KardexIn && lines[j].Type == dto.KardexOut
	})

	balance, cost := decimal.Zero, decimal.Zero
	totalIn, totalOut := decimal.Zero, decimal.Zero
	for i := range lines {
		l := &lines[i]
		if l.Type == dto.KardexIn {
			cost = inventory.WeightedAverageCost(balance, cost, l.In, l.UnitPrice)
			balance = balance.Add(l.In)
			totalIn = totalIn.Add(l.In)
		} else {
			l.UnitPrice = cost
			balance = balance.Sub(l.Out)
			totalOut = totalOut.Add(l.Out)
		}
		l.Balance = balance
		l.AverageCost = cost.Round(4)
	}

	return &dto.KardexResponse{
		Product:     *dto.FromProduct(product),
		Lines:       lines,
		TotalIn:     totalIn,
		TotalOut:    totalOut,
		Balance:     balance,
		AverageCost: cost.Round(4),
		GeneratedAt: uc.now().UTC(),
	}, nil
}

// PDF renderiza el kardex; devuelve también el nombre de archivo sugerido.
func (uc *KardexUseCase) PDF(ctx context.Context, productID string) ([]byte, string, error) {
	if uc.pdfGen == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	k, err := uc.Build(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdfGen.GenerateKardexPDF(ctx, k)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return b, "kardex_" + k.Product.ID + ".pdf", nil
}
