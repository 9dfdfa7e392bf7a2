package ports

import (
	"context"

	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
	"github.com/furiksayram-commits/debt-tracker/internal/dto"
)

// DebtorReaderSvc defines read operations over the debtor collection.
type DebtorReaderSvc interface {
	// ListAll reloads and returns the full collection in storage order.
	ListAll(ctx context.Context) ([]domain.Debtor, error)

	// Search returns debtors whose name contains the query case-insensitively.
	// An empty query returns the full collection.
	Search(ctx context.Context, query string) ([]domain.Debtor, error)
}

// DebtorWriterSvc defines mutating operations over the debtor collection.
// Every mutation is structured as reload, mutate, persist.
type DebtorWriterSvc interface {
	// AddDebt records a debt for the named person, appending to an existing
	// debtor when the trimmed name matches case-insensitively, or creating a
	// new debtor otherwise.
	AddDebt(ctx context.Context, req dto.AddDebtRequest) (*domain.Debtor, error)

	// AddDebtTo appends a debt record to an existing debtor located by id.
	AddDebtTo(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error)

	// RecordPayment appends a payment record to an existing debtor.
	RecordPayment(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error)

	// DeleteDebtor removes a debtor and its entire record history as one
	// unit, returning the removed debtor's name.
	DeleteDebtor(ctx context.Context, debtorID string) (string, error)
}

// DebtorSvcFacade combines all debtor ledger service interfaces.
type DebtorSvcFacade interface {
	DebtorReaderSvc
	DebtorWriterSvc
}
