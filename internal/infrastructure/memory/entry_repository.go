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

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementa repository.EntryRepository.
type EntryRepo struct {
	s  *Store
	tx *undoLog
}

func (r *EntryRepo) Create(_ context.Context, e *entity.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[e.ProductID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.suppliers[e.SupplierID]; !ok {
		return domain.ErrConflict
	}
	remember(r.tx, r.s, r.s.entries, e.ID)
	r.s.entries[e.ID] = *e
	r.s.track(e.ID)
	return nil
}

func (r *EntryRepo) GetByID(_ context.Context, id string) (*entity.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EntryRepo) Update(_ context.Context, e *entity.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.entries[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = e.Quantity
	cur.Price = e.Price
	cur.StartTime = e.StartTime
	cur.UpdatedAt = e.UpdatedAt
	remember(r.tx, r.s, r.s.entries, e.ID)
	r.s.entries[e.ID] = cur
	return nil
}

func (r *EntryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	remember(r.tx, r.s, r.s.entries, id)
	delete(r.s.entries, id)
	delete(r.s.order, id)
	return nil
}

func (r *EntryRepo) List(_ context.Context) ([]*entity.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.entries))
	for id := range r.s.entries {
		ids = append(ids, id)
	}
	newestFirst(r.s, ids, func(id string) time.Time { return r.s.entries[id].CreatedAt })
	out := make([]*entity.Entry, 0, len(ids))
	for _, id := range ids {
		e := r.s.entries[id]
		out = append(out, &e)
	}
	return out, nil
}

// ListByProduct devuelve las entradas del producto por start_time ascendente.
func (r *EntryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Entry, 0)
	for _, e := range r.s.entries {
		e := e // per-iteration copy (go 1.21 loop semantics)
		if e.ProductID == productID {
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})
	return out, nil
}

func (r *EntryRepo) SumQuantity(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range r.s.entries {
		if e.ProductID == productID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func (r *EntryRepo) Exists(_ context.Context, key entity.EntryKey) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.entries {
		if e.Matches(key) {
			return true, nil
		}
	}
	return false, nil
}
