package ports

import (
	"context"

	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
)

// DebtorStore is the narrow persistence capability the ledger engine depends
// on. The backing store offers only whole-document replace: every mutation is
// read-entire, modify-in-memory, write-entire. There is no partial update and
// no conditional write, so two concurrent writers can race with
// last-write-wins semantics at whole-collection granularity.
type DebtorStore interface {
	// Load fetches the current persisted collection. A backing document that
	// does not exist yet is not an error and yields an empty collection;
	// transport failures are reported so that callers mid-mutation do not
	// proceed on absent data.
	Load(ctx context.Context) ([]domain.Debtor, error)

	// Save replaces the entire persisted document with the given collection,
	// overwriting any prior content.
	Save(ctx context.Context, debtors []domain.Debtor) error
}
