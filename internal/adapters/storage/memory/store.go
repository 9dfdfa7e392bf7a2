// Package memory provides an in-process DebtorStore used by tests and local
// development. It mimics the whole-document semantics of the remote bin:
// Load returns a deep copy so callers never alias the stored slice.
package memory

import (
	"context"
	"sync"

	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
)

// Store is a RWMutex-guarded in-memory ledger document.
type Store struct {
	mu      sync.RWMutex
	debtors []domain.Debtor
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{debtors: []domain.Debtor{}}
}

// Load returns a deep copy of the stored collection.
func (s *Store) Load(ctx context.Context) ([]domain.Debtor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.debtors), nil
}

// Save replaces the stored collection with a deep copy of the given one.
func (s *Store) Save(ctx context.Context, debtors []domain.Debtor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debtors = clone(debtors)
	return nil
}

func clone(debtors []domain.Debtor) []domain.Debtor {
	out := make([]domain.Debtor, len(debtors))
	copy(out, debtors)
	for i := range out {
		records := make([]domain.LedgerRecord, len(debtors[i].Records))
		copy(records, debtors[i].Records)
		out[i].Records = records
	}
	return out
}
