package memory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn de forma exclusiva respecto a otras transacciones. Si fn devuelve
// error se deshacen las filas que fn escribió, como un ROLLBACK.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea un TxRunner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.EntryRepository,
	withdrawalRepo repository.WithdrawalRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	undo := &undoLog{}
	if err := fn(&ProductRepo{s: t.s, tx: undo}, &EntryRepo{s: t.s, tx: undo}, &WithdrawalRepo{s: t.s, tx: undo}); err != nil {
		t.s.rollback(undo)
		return err
	}
	return nil
}
