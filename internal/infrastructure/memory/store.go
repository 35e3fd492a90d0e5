// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve para desarrollo local (DB_DRIVER=memory) y para las pruebas.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Store guarda todas las tablas. Las lecturas y escrituras individuales se serializan con mu;
// las transacciones (TxRunner) además se serializan entre sí con txMu y al fallar
// deshacen solo sus propias escrituras.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	seq         int64
	order       map[string]int64
	products    map[string]entity.Product
	suppliers   map[string]entity.Supplier
	entries     map[string]entity.Entry
	withdrawals map[string]entity.Withdrawal
}

// NewStore crea un datastore vacío.
func NewStore() *Store {
	return &Store{
		order:       make(map[string]int64),
		products:    make(map[string]entity.Product),
		suppliers:   make(map[string]entity.Supplier),
		entries:     make(map[string]entity.Entry),
		withdrawals: make(map[string]entity.Withdrawal),
	}
}

// Repos devuelve los repositorios sobre este store.
func (s *Store) Repos() (*ProductRepo, *SupplierRepo, *EntryRepo, *WithdrawalRepo) {
	return &ProductRepo{s: s}, &SupplierRepo{s: s}, &EntryRepo{s: s}, &WithdrawalRepo{s: s}
}

// track registra el orden de inserción; mu debe estar tomado.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// undoLog guarda la imagen previa de cada fila que toca una transacción. El rollback
// restaura solo esas filas; lo escrito fuera de la transacción se conserva.
type undoLog struct {
	ops []func()
}

// remember anota el estado previo de m[id] antes de modificarlo; mu debe estar tomado.
// Con u nil (fuera de una transacción) no hace nada.
func remember[V any](u *undoLog, s *Store, m map[string]V, id string) {
	if u == nil {
		return
	}
	prev, had := m[id]
	seq, tracked := s.order[id]
	u.ops = append(u.ops, func() {
		if had {
			m[id] = prev
		} else {
			delete(m, id)
		}
		if tracked {
			s.order[id] = seq
		} else {
			delete(s.order, id)
		}
	})
}

// rollback deshace las escrituras anotadas, de la última a la primera.
func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(u.ops) - 1; i >= 0; i-- {
		u.ops[i]()
	}
}

// newestFirst ordena por created_at descendente y, en empate, por orden de inserción.
func newestFirst(s *Store, ids []string, created func(string) time.Time) {
	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := created(ids[i]), created(ids[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return s.order[ids[i]] > s.order[ids[j]]
	})
}
