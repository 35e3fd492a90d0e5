package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

func newBulk(f *fixture, entries repository.EntryRepository, withdrawals repository.WithdrawalRepository, max int) *inventory.BulkWithdrawalUseCase {
	if entries == nil {
		entries = f.entries
	}
	if withdrawals == nil {
		withdrawals = f.withdrawals
	}
	return inventory.NewBulkWithdrawalUseCase(f.products, entries, withdrawals, f.v, max, zerolog.Nop())
}

func wreq(productID, title, qty, endTime string) dto.WithdrawalRequest {
	return dto.WithdrawalRequest{ProductID: productID, Title: title, Quantity: d(qty), EndTime: endTime}
}

func assertTotals(t *testing.T, resp *dto.BulkWithdrawalResponse, n int) {
	t.Helper()
	require.Len(t, resp.Results, n)
	assert.Equal(t, n, resp.Total)
	assert.Equal(t, resp.Total, resp.SuccessCount+resp.ErrorCount)
	for i, r := range resp.Results {
		assert.True(t, (r.Withdrawal == nil) != (len(r.Errors) == 0), "resultado %d debe tener salida o errores", i)
		for _, e := range r.Errors {
			assert.Equal(t, i, e.Index)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock acumulado dentro del lote
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkWithdrawal_StockSeDescuentaDentroDelLote(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tubería PVC")
	f.stock(t, p, "100")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "60", t0),
			wreq(p, "Obra sur", "50", "2024-01-15T11:00:00Z"),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 2)
	assert.Equal(t, 1, resp.SuccessCount)

	require.NotNil(t, resp.Results[0].Withdrawal)
	assert.True(t, d("60").Equal(resp.Results[0].Withdrawal.Quantity))

	require.Len(t, resp.Results[1].Errors, 1)
	e := resp.Results[1].Errors[0]
	assert.Equal(t, "quantity", e.Field)
	assert.Equal(t, "Stock insuficiente. Disponible: 40, Solicitado: 50", e.Message)
	require.NotNil(t, e.Available)
	require.NotNil(t, e.Requested)
	assert.True(t, d("40").Equal(*e.Available))
	assert.True(t, d("50").Equal(*e.Requested))
	assert.Equal(t, p, e.ProductID)

	assert.True(t, d("60").Equal(f.withdrawn(t, p)))
}

func TestBulkWithdrawal_IdenticasFallanPorStockNoPorDuplicado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "60", t0),
			wreq(p, "Obra norte", "60", t0),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 2)
	require.NotNil(t, resp.Results[0].Withdrawal)
	require.Len(t, resp.Results[1].Errors, 1)
	assert.Equal(t, "quantity", resp.Results[1].Errors[0].Field)
}

func TestBulkWithdrawal_DuplicadosDentroDelLoteSeAceptan(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Arena fina")
	f.stock(t, p, "100")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "10", t0),
			wreq(p, "Obra norte", "10", t0),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 2)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.True(t, d("20").Equal(f.withdrawn(t, p)))
}

func TestBulkWithdrawal_DuplicadosDelLoteContraRegistrosPrevios(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Arena fina")
	f.stock(t, p, "100")
	uc := newBulk(f, nil, nil, 0)
	batch := dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "10", t0),
			wreq(p, "Obra norte", "10", t0),
			wreq(p, "Obra norte", "10", t0),
		},
	}

	first, err := uc.CreateBulk(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 3, first.SuccessCount)

	// Repetir el lote: cada copia ya existía antes de esta ejecución.
	second, err := uc.CreateBulk(context.Background(), batch)
	require.NoError(t, err)
	assertTotals(t, second, 3)
	assert.Equal(t, 0, second.SuccessCount)
	for _, r := range second.Results {
		require.Len(t, r.Errors, 1)
		assert.Equal(t, "El registro de salida ya existe", r.Errors[0].Message)
	}
	assert.True(t, d("30").Equal(f.withdrawn(t, p)))
}

func TestBulkWithdrawal_RetirarExactamenteElSaldo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Clavos 2in")
	f.stock(t, p, "7.5")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "7.5", t0),
			wreq(p, "Obra sur", "0.01", t0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SuccessCount)
	require.Len(t, resp.Results[1].Errors, 1)
	assert.Equal(t, "Stock insuficiente. Disponible: 0, Solicitado: 0.01", resp.Results[1].Errors[0].Message)
}

func TestBulkWithdrawal_ProductosIndependientes(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Producto A")
	b := f.product(t, "Producto B")
	f.stock(t, a, "10")
	f.stock(t, b, "5")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(a, "Obra norte", "10", t0),
			wreq(b, "Obra norte", "5", t0),
			wreq(a, "Obra sur", "1", t0),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 3)
	assert.NotNil(t, resp.Results[0].Withdrawal)
	assert.NotNil(t, resp.Results[1].Withdrawal)
	assert.Equal(t, "quantity", resp.Results[2].Errors[0].Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación, producto y duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkWithdrawal_ProductoNoExistente(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")

	unknown := uuid.New().String()

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(unknown, "Obra norte", "1", t0),
			wreq("no-es-uuid", "Obra norte", "1", t0),
			wreq(p, "Obra norte", "1", t0),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 3)
	assert.Equal(t, 1, resp.SuccessCount)
	for _, i := range []int{0, 1} {
		require.Len(t, resp.Results[i].Errors, 1)
		assert.Equal(t, "productId", resp.Results[i].Errors[0].Field)
		assert.Equal(t, "Producto no existente", resp.Results[i].Errors[0].Message)
	}
	assert.NotNil(t, resp.Results[2].Withdrawal)

	// Solo la salida válida mueve saldo; nada queda registrado para el producto inexistente.
	available, err := inventory.NewStockBalanceCalculator(f.entries, f.withdrawals).Available(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, d("99").Equal(available), "got %s", available)
	assert.True(t, f.withdrawn(t, unknown).IsZero())
	all, err := f.withdrawals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0].ProductID)
}

func TestBulkWithdrawal_ErroresDeValidacion(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "  abc  ", "1", t0),
			wreq(p, "Obra norte", "0", t0),
			wreq(p, "Obra norte", "1", "15/01/2024"),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 3)
	assert.Equal(t, 0, resp.SuccessCount)
	assert.Equal(t, "title", resp.Results[0].Errors[0].Field)
	assert.Equal(t, "quantity", resp.Results[1].Errors[0].Field)
	assert.Equal(t, "endTime", resp.Results[2].Errors[0].Field)
	assert.True(t, f.withdrawn(t, p).IsZero())
}

func TestBulkWithdrawal_TituloSeRecorta(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")

	resp, err := newBulk(f, nil, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "   Obra norte  ", "1", t0)},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Results[0].Withdrawal)
	assert.Equal(t, "Obra norte", resp.Results[0].Withdrawal.Title)
}

func TestBulkWithdrawal_ReprocesarElMismoLoteEsIdempotente(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")
	uc := newBulk(f, nil, nil, 0)
	batch := dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra norte", "10", t0),
			wreq(p, "Obra sur", "20", "2024-01-15T12:00:00-05:00"),
		},
	}

	first, err := uc.CreateBulk(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SuccessCount)

	second, err := uc.CreateBulk(context.Background(), batch)
	require.NoError(t, err)
	assertTotals(t, second, 2)
	assert.Equal(t, 0, second.SuccessCount)
	for _, r := range second.Results {
		require.Len(t, r.Errors, 1)
		assert.Equal(t, "general", r.Errors[0].Field)
		assert.Equal(t, "El registro de salida ya existe", r.Errors[0].Message)
	}
	assert.True(t, d("30").Equal(f.withdrawn(t, p)))
}

func TestBulkWithdrawal_DuplicadoIgnoraEscalaDecimal(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")
	uc := newBulk(f, nil, nil, 0)

	_, err := uc.CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "Obra norte", "10", t0)},
	})
	require.NoError(t, err)

	resp, err := uc.CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "Obra norte", "10.00", "2024-01-15T05:00:00-05:00")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results[0].Errors, 1)
	assert.Equal(t, "El registro de salida ya existe", resp.Results[0].Errors[0].Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallas de infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkWithdrawal_FallaDePersistenciaNoDescuentaNiAborta(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")
	repo := &failingWithdrawals{WithdrawalRepo: f.withdrawals, failTitle: "Obra caída"}

	resp, err := newBulk(f, nil, repo, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra caída", "100", t0),
			wreq(p, "Obra norte", "100", t0),
		},
	})
	require.NoError(t, err)
	assertTotals(t, resp, 2)
	require.Len(t, resp.Results[0].Errors, 1)
	assert.Equal(t, "general", resp.Results[0].Errors[0].Field)
	assert.Contains(t, resp.Results[0].Errors[0].Message, "Error al crear el registro")
	assert.NotNil(t, resp.Results[1].Withdrawal, "el stock no se consumió con la salida fallida")
}

func TestBulkWithdrawal_FallaAlBuscarProductoEsErrorPorItem(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	f.stock(t, p, "100")
	uc := inventory.NewBulkWithdrawalUseCase(&failingProducts{f.products}, f.entries, f.withdrawals, f.v, 0, zerolog.Nop())

	resp, err := uc.CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "Obra norte", "1", t0)},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results[0].Errors, 1)
	assert.Equal(t, "general", resp.Results[0].Errors[0].Field)
	assert.Contains(t, resp.Results[0].Errors[0].Message, "Error al validar el registro")
}

func TestBulkWithdrawal_SnapshotUnaVezPorProducto(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Producto A")
	b := f.product(t, "Producto B")
	f.stock(t, a, "100")
	f.stock(t, b, "100")
	entries := &countingEntries{EntryRepo: f.entries}

	_, err := newBulk(f, entries, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(a, "Obra uno", "1", t0),
			wreq(b, "Obra uno", "1", t0),
			wreq(a, "Obra dos", "1", t0),
			wreq(a, "Obra tres", "1", t0),
			wreq("basura", "Obra tres", "1", t0),
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, entries.calls.Load())
}

func TestBulkWithdrawal_SnapshotFallidoFallaElLote(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	entries := &countingEntries{EntryRepo: f.entries, fail: true}

	resp, err := newBulk(f, entries, nil, 0).CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{wreq(p, "Obra norte", "1", t0)},
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, errDBDown)
}

func TestBulkWithdrawal_LoteVacioYLimite(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cemento")
	uc := newBulk(f, nil, nil, 2)

	resp, err := uc.CreateBulk(context.Background(), dto.BulkWithdrawalRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Results)

	_, err = uc.CreateBulk(context.Background(), dto.BulkWithdrawalRequest{
		Withdrawals: []dto.WithdrawalRequest{
			wreq(p, "Obra uno", "1", t0), wreq(p, "Obra dos", "1", t0), wreq(p, "Obra tres", "1", t0),
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
