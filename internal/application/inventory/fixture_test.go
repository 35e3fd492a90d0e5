package inventory_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/validator"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture sobre el datastore en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testRUC = "20123456789"
	t0      = "2024-01-15T10:00:00Z"
)

type fixture struct {
	store       *memory.Store
	products    *memory.ProductRepo
	suppliers   *memory.SupplierRepo
	entries     *memory.EntryRepo
	withdrawals *memory.WithdrawalRepo
	v           *validator.Validator
	supplierID  string
	seq         int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	p, sup, e, w := s.Repos()
	f := &fixture{store: s, products: p, suppliers: sup, entries: e, withdrawals: w, v: validator.New()}
	f.supplierID = f.supplier(t, testRUC, "Ferretería Central")
	return f
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *fixture) product(t *testing.T, title string) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:                uuid.New().String(),
		Title:             title,
		UnitOfMeasurement: "UND",
		MaterialType:      "Ferretería",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p.ID
}

func (f *fixture) supplier(t *testing.T, ruc, name string) string {
	t.Helper()
	now := time.Now().UTC()
	s := &entity.Supplier{ID: uuid.New().String(), Name: name, RUC: ruc, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.suppliers.Create(context.Background(), s))
	return s.ID
}

// stock registra una entrada directa de qty unidades a precio 1.
func (f *fixture) stock(t *testing.T, productID, qty string) {
	t.Helper()
	f.stockAt(t, productID, qty, "1", time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC))
}

func (f *fixture) stockAt(t *testing.T, productID, qty, price string, at time.Time) {
	t.Helper()
	f.seq++
	now := time.Now().UTC()
	e := &entity.Entry{
		ID:         uuid.New().String(),
		ProductID:  productID,
		SupplierID: f.supplierID,
		Quantity:   d(qty),
		Price:      d(price),
		StartTime:  at,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.entries.Create(context.Background(), e))
}

func (f *fixture) withdrawn(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	sum, err := f.withdrawals.SumQuantity(context.Background(), productID)
	require.NoError(t, err)
	return sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

var errDBDown = errors.New("conexión rechazada")

// failingWithdrawals falla al crear salidas cuyo título sea failTitle.
type failingWithdrawals struct {
	*memory.WithdrawalRepo
	failTitle string
}

func (r *failingWithdrawals) Create(ctx context.Context, w *entity.Withdrawal) error {
	if w.Title == r.failTitle {
		return errDBDown
	}
	return r.WithdrawalRepo.Create(ctx, w)
}

// countingEntries cuenta las llamadas a SumQuantity y opcionalmente falla.
type countingEntries struct {
	*memory.EntryRepo
	calls atomic.Int32
	fail  bool
}

func (r *countingEntries) SumQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	r.calls.Add(1)
	if r.fail {
		return decimal.Zero, errDBDown
	}
	return r.EntryRepo.SumQuantity(ctx, productID)
}

// failingProducts falla en cualquier lectura de producto.
type failingProducts struct {
	*memory.ProductRepo
}

func (r *failingProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errDBDown
}
