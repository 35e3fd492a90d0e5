package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo implementa repository.WithdrawalRepository.
type WithdrawalRepo struct {
	s  *Store
	tx *undoLog
}

func (r *WithdrawalRepo) Create(_ context.Context, w *entity.Withdrawal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[w.ProductID]; !ok {
		return domain.ErrConflict
	}
	remember(r.tx, r.s, r.s.withdrawals, w.ID)
	r.s.withdrawals[w.ID] = *w
	r.s.track(w.ID)
	return nil
}

func (r *WithdrawalRepo) GetByID(_ context.Context, id string) (*entity.Withdrawal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WithdrawalRepo) Update(_ context.Context, w *entity.Withdrawal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.withdrawals[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = w.Quantity
	cur.Title = w.Title
	cur.EndTime = w.EndTime
	cur.UpdatedAt = w.UpdatedAt
	remember(r.tx, r.s, r.s.withdrawals, w.ID)
	r.s.withdrawals[w.ID] = cur
	return nil
}

func (r *WithdrawalRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.withdrawals[id]; !ok {
		return domain.ErrNotFound
	}
	remember(r.tx, r.s, r.s.withdrawals, id)
	delete(r.s.withdrawals, id)
	delete(r.s.order, id)
	return nil
}

func (r *WithdrawalRepo) List(_ context.Context) ([]*entity.Withdrawal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.withdrawals))
	for id := range r.s.withdrawals {
		ids = append(ids, id)
	}
	newestFirst(r.s, ids, func(id string) time.Time { return r.s.withdrawals[id].CreatedAt })
	out := make([]*entity.Withdrawal, 0, len(ids))
	for _, id := range ids {
		w := r.s.withdrawals[id]
		out = append(out, &w)
	}
	return out, nil
}

// ListByProduct devuelve las salidas del producto por end_time ascendente.
func (r *WithdrawalRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Withdrawal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Withdrawal, 0)
	for _, w := range r.s.withdrawals {
		w := w // per-iteration copy (go 1.21 loop semantics)
		if w.ProductID == productID {
			out = append(out, &w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EndTime.Equal(out[j].EndTime) {
			return out[i].EndTime.Before(out[j].EndTime)
		}
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})
	return out, nil
}

func (r *WithdrawalRepo) SumQuantity(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, w := range r.s.withdrawals {
		if w.ProductID == productID {
			sum = sum.Add(w.Quantity)
		}
	}
	return sum, nil
}

func (r *WithdrawalRepo) Exists(ctx context.Context, key entity.WithdrawalKey) (bool, error) {
	n, err := r.CountMatching(ctx, key)
	return n > 0, err
}

func (r *WithdrawalRepo) CountMatching(_ context.Context, key entity.WithdrawalKey) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, w := range r.s.withdrawals {
		if w.Matches(key) {
			n++
		}
	}
	return n, nil
}
