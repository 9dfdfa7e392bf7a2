// Package pgsql persists the ledger document as a single jsonb row in
// PostgreSQL. It deliberately keeps the whole-document load/save semantics
// of the remote bin (last-write-wins, no conditional writes) so the two
// backends remain interchangeable; it only removes the external SaaS
// dependency.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/furiksayram-commits/debt-tracker/internal/apperrors"
	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// document mirrors the bin payload so both backends persist the same shape.
type document struct {
	Debts []domain.Debtor `json:"debts"`
}

// Store reads and writes the single ledger_document row.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Load fetches the current document. An absent row means no data yet and
// yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Debtor, error) {
	query := `SELECT document FROM ledger_document WHERE id = TRUE;`

	var raw []byte
	err := s.pool.QueryRow(ctx, query).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.Debtor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read ledger document: %v", apperrors.ErrStorage, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode ledger document: %v", apperrors.ErrStorage, err)
	}
	if doc.Debts == nil {
		return []domain.Debtor{}, nil
	}
	return doc.Debts, nil
}

// Save replaces the document row wholesale.
func (s *Store) Save(ctx context.Context, debtors []domain.Debtor) error {
	if debtors == nil {
		debtors = []domain.Debtor{}
	}
	raw, err := json.Marshal(document{Debts: debtors})
	if err != nil {
		return fmt.Errorf("%w: encode ledger document: %v", apperrors.ErrStorage, err)
	}

	query := `
		INSERT INTO ledger_document (id, document, updated_at)
		VALUES (TRUE, $1, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now();
	`
	if _, err := s.pool.Exec(ctx, query, raw); err != nil {
		return fmt.Errorf("%w: write ledger document: %v", apperrors.ErrStorage, err)
	}
	return nil
}
