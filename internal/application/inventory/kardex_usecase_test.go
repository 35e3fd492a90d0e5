package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

type fakePDF struct{ got *dto.KardexResponse }

func (f *fakePDF) GenerateKardexPDF(_ context.Context, k *dto.KardexResponse) ([]byte, error) {
	f.got = k
	return []byte("%PDF-1.4"), nil
}

func TestStock_GetStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")
	f.stock(t, p, "20.5")
	_, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "Obra norte", "30", t0)},
	})
	require.NoError(t, err)

	uc := inventory.NewStockUseCase(f.products, f.entries, f.withdrawals)
	out, err := uc.GetStock(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, d("120.5").Equal(out.Entries))
	assert.True(t, d("30").Equal(out.Withdrawals))
	assert.True(t, d("90.5").Equal(out.Available))

	_, err = uc.GetStock(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	empty := f.product(t, "Sin movimientos")
	out, err = uc.GetStock(context.Background(), empty)
	require.NoError(t, err)
	assert.True(t, out.Available.IsZero())
}

func TestKardex_SaldoYCostoPromedio(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	day := func(n int) time.Time { return time.Date(2024, 1, n, 9, 0, 0, 0, time.UTC) }
	f.stockAt(t, p, "10", "5", day(1))
	f.stockAt(t, p, "10", "7", day(3))

	_, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "4", day(2).Format(time.RFC3339)),
			wreq(p, "Obra sur", "6", day(3).Format(time.RFC3339)),
		},
	})
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := inventory.NewKardexUseCase(f.products, f.suppliers, f.entries, f.withdrawals, gen)
	k, err := uc.Build(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, k.Lines, 4)

	// 1: +10 @5, 2: -4, 3: +10 @7 (antes que la salida del mismo instante), 4: -6
	assert.Equal(t, dto.KardexIn, k.Lines[0].Type)
	assert.Equal(t, "Ferretería Central", k.Lines[0].Detail)
	assert.Equal(t, dto.KardexOut, k.Lines[1].Type)
	assert.True(t, d("6").Equal(k.Lines[1].Balance))
	assert.True(t, d("5").Equal(k.Lines[1].UnitPrice))
	assert.Equal(t, dto.KardexIn, k.Lines[2].Type)
	assert.True(t, d("16").Equal(k.Lines[2].Balance))
	// (6*5 + 10*7) / 16 = 6.25
	assert.True(t, d("6.25").Equal(k.Lines[2].AverageCost), "got %s", k.Lines[2].AverageCost)
	assert.Equal(t, "Obra sur", k.Lines[3].Detail)
	assert.True(t, d("10").Equal(k.Balance))
	assert.True(t, d("20").Equal(k.TotalIn))
	assert.True(t, d("10").Equal(k.TotalOut))

	b, name, err := uc.PDF(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Equal(t, "kardex_"+p+".pdf", name)
	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Lines, 4)

	_, err = uc.Build(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
