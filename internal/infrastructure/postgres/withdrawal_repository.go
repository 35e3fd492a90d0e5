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

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo libro de salidas sobre PostgreSQL.
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador. Pasar pool o tx.
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

const withdrawalColumns = `id, product_id, title, quantity, end_time, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (*entity.Withdrawal, error) {
	var w entity.Withdrawal
	if err := row.Scan(&w.ID, &w.ProductID, &w.Title, &w.Quantity, &w.EndTime, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.EndTime = w.EndTime.UTC()
	return &w, nil
}

func (r *WithdrawalRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Withdrawal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()
	var out []*entity.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error {
	query := `INSERT INTO withdrawals (` + withdrawalColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, w.ID, w.ProductID, w.Title, w.Quantity, w.EndTime, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

func (r *WithdrawalRepo) GetByID(ctx context.Context, id string) (*entity.Withdrawal, error) {
	w, err := scanWithdrawal(r.q.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}
	return w, nil
}

func (r *WithdrawalRepo) Update(ctx context.Context, w *entity.Withdrawal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE withdrawals SET title = $2, quantity = $3, end_time = $4, updated_at = $5 WHERE id = $1`,
		w.ID, w.Title, w.Quantity, w.EndTime, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WithdrawalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM withdrawals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WithdrawalRepo) List(ctx context.Context) ([]*entity.Withdrawal, error) {
	return r.list(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals ORDER BY created_at DESC, id`)
}

func (r *WithdrawalRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Withdrawal, error) {
	return r.list(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE product_id = $1 ORDER BY end_time, created_at`, productID)
}

func (r *WithdrawalRepo) SumQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM withdrawals WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum withdrawals: %w", err)
	}
	return sum, nil
}

// Exists filtra por producto, título y fecha en SQL y compara la cantidad con Matches.
func (r *WithdrawalRepo) Exists(ctx context.Context, key entity.WithdrawalKey) (bool, error) {
	n, err := r.CountMatching(ctx, key)
	return n > 0, err
}

// CountMatching cuenta las salidas registradas con la misma tupla.
func (r *WithdrawalRepo) CountMatching(ctx context.Context, key entity.WithdrawalKey) (int, error) {
	candidates, err := r.list(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE product_id = $1 AND title = $2 AND end_time = $3`,
		key.ProductID, key.Title, key.EndTime)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, w := range candidates {
		if w.Matches(key) {
			n++
		}
	}
	return n, nil
}
