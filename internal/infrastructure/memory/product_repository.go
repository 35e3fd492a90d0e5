package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct {
	s  *Store
	tx *undoLog
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	remember(r.tx, r.s, r.s.products, p.ID)
	r.s.products[p.ID] = *p
	r.s.track(p.ID)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByTitle(_ context.Context, title string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Title == title {
			return &p, nil
		}
	}
	return nil, nil
}

// GetForUpdate no bloquea filas: el TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	remember(r.tx, r.s, r.s.products, p.ID)
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	newestFirst(r.s, ids, func(id string) time.Time { return r.s.products[id].CreatedAt })
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p := r.s.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.entries {
		if e.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, w := range r.s.withdrawals {
		if w.ProductID == id {
			return domain.ErrConflict
		}
	}
	remember(r.tx, r.s, r.s.products, id)
	delete(r.s.products, id)
	delete(r.s.order, id)
	return nil
}
