package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementa repository.SupplierRepository. El RUC es único.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.RUC == sup.RUC {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sup.ID] = *sup
	r.s.track(sup.ID)
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) GetByRUC(_ context.Context, ruc string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sup := range r.s.suppliers {
		if sup.RUC == ruc {
			return &sup, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.suppliers))
	for id := range r.s.suppliers {
		ids = append(ids, id)
	}
	newestFirst(r.s, ids, func(id string) time.Time { return r.s.suppliers[id].CreatedAt })
	out := make([]*entity.Supplier, 0, len(ids))
	for _, id := range ids {
		sup := r.s.suppliers[id]
		out = append(out, &sup)
	}
	return out, nil
}
