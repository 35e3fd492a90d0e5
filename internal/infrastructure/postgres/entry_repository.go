package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo libro de entradas sobre PostgreSQL.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `id, product_id, supplier_id, quantity, price, start_time, created_at, updated_at`

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.ProductID, &e.SupplierID, &e.Quantity, &e.Price, &e.StartTime, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.StartTime = e.StartTime.UTC()
	return &e, nil
}

func (r *EntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Entry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	query := `INSERT INTO entries (` + entryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, e.ID, e.ProductID, e.SupplierID, e.Quantity, e.Price, e.StartTime, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE entries SET quantity = $2, price = $3, start_time = $4, updated_at = $5 WHERE id = $1`,
		e.ID, e.Quantity, e.Price, e.StartTime, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntryRepo) List(ctx context.Context) ([]*entity.Entry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY created_at DESC, id`)
}

func (r *EntryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Entry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM entries WHERE product_id = $1 ORDER BY start_time, created_at`, productID)
}

func (r *EntryRepo) SumQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM entries WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum entries: %w", err)
	}
	return sum, nil
}

// Exists filtra por producto, proveedor y fecha en SQL y compara montos con Matches.
func (r *EntryRepo) Exists(ctx context.Context, key entity.EntryKey) (bool, error) {
	candidates, err := r.list(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE product_id = $1 AND supplier_id = $2 AND start_time = $3`,
		key.ProductID, key.SupplierID, key.StartTime)
	if err != nil {
		return false, err
	}
	for _, e := range candidates {
		if e.Matches(key) {
			return true, nil
		}
	}
	return false, nil
}
