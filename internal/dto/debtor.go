package dto

import (
	"time"

	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddDebtRequest defines the data needed to record a debt by debtor name.
// Amount accepts a JSON number or a decimal string.
type AddDebtRequest struct {
	Name    string          `json:"name" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Comment string          `json:"comment"`
	Phone   string          `json:"phone"`
}

// AddRecordRequest defines the data needed to append a debt or payment
// record to an existing debtor.
type AddRecordRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Comment string          `json:"comment"`
}

// LedgerRecordResponse defines the data returned for one ledger record.
type LedgerRecordResponse struct {
	ID      string            `json:"id"`
	Type    domain.RecordKind `json:"type"`
	Amount  decimal.Decimal   `json:"amount"`
	Comment string            `json:"comment"`
	Date    time.Time         `json:"date"`
}

// DebtorResponse defines the data returned for a debtor, including the full
// record history. Mirrors domain.Debtor and the persisted document format.
type DebtorResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Phone       string                 `json:"phone"`
	Records     []LedgerRecordResponse `json:"debts"`
	TotalAmount decimal.Decimal        `json:"totalAmount"`
	TotalPaid   decimal.Decimal        `json:"totalPaid"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// DeleteDebtorResponse confirms a deletion with the removed debtor's name.
type DeleteDebtorResponse struct {
	Success       bool   `json:"success"`
	DeletedDebtor string `json:"deletedDebtor"`
}

// SearchDebtorsParams defines query parameters for the search endpoint.
type SearchDebtorsParams struct {
	Query string `form:"q"`
}

// ToLedgerRecordResponse converts a domain.LedgerRecord to its response DTO.
func ToLedgerRecordResponse(r domain.LedgerRecord) LedgerRecordResponse {
	return LedgerRecordResponse{
		ID:      r.RecordID,
		Type:    r.Kind,
		Amount:  r.Amount,
		Comment: r.Comment,
		Date:    r.Date,
	}
}

// ToDebtorResponse converts a domain.Debtor to DebtorResponse.
func ToDebtorResponse(d *domain.Debtor) DebtorResponse {
	records := make([]LedgerRecordResponse, len(d.Records))
	for i, r := range d.Records {
		records[i] = ToLedgerRecordResponse(r)
	}
	return DebtorResponse{
		ID:          d.DebtorID,
		Name:        d.Name,
		Phone:       d.Phone,
		Records:     records,
		TotalAmount: d.TotalAmount,
		TotalPaid:   d.TotalPaid,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToListDebtorResponse converts a slice of domain.Debtor preserving storage
// order.
func ToListDebtorResponse(debtors []domain.Debtor) []DebtorResponse {
	res := make([]DebtorResponse, len(debtors))
	for i := range debtors {
		res[i] = ToDebtorResponse(&debtors[i])
	}
	return res
}
