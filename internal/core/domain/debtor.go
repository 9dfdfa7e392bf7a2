package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes the two kinds of ledger entries.
type RecordKind string

const (
	KindDebt    RecordKind = "debt"
	KindPayment RecordKind = "payment"
)

// IsValid reports whether k is one of the two known record kinds.
func (k RecordKind) IsValid() bool {
	return k == KindDebt || k == KindPayment
}

// LedgerRecord is one immutable entry in a debtor's history. Records are
// append-only: once written they are never reordered or mutated in place.
// JSON tags match the persisted document format.
type LedgerRecord struct {
	RecordID string          `json:"id"`
	Kind     RecordKind      `json:"type"`
	Amount   decimal.Decimal `json:"amount"` // strictly positive; sign is carried by Kind
	Comment  string          `json:"comment"`
	Date     time.Time       `json:"date"`
}

// Debtor is one entry per distinct person in the ledger.
// TotalAmount and TotalPaid are derived from Records and must be recomputed
// via RecomputeTotals after every mutation; they are never incremented.
type Debtor struct {
	DebtorID    string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Records     []LedgerRecord  `json:"debts"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// RecomputeTotals rederives TotalAmount and TotalPaid from the full record
// list. Summing from scratch on every mutation keeps the aggregates from
// drifting away from the records that produce them.
func (d *Debtor) RecomputeTotals() {
	totalAmount := decimal.Zero
	totalPaid := decimal.Zero
	for _, r := range d.Records {
		switch r.Kind {
		case KindDebt:
			totalAmount = totalAmount.Add(r.Amount)
		case KindPayment:
			totalPaid = totalPaid.Add(r.Amount)
		}
	}
	d.TotalAmount = totalAmount
	d.TotalPaid = totalPaid
}

// Balance returns the outstanding balance. A negative balance means
// overpayment, which is a valid state.
func (d *Debtor) Balance() decimal.Decimal {
	return d.TotalAmount.Sub(d.TotalPaid)
}

// AppendRecord appends a record, rederives the totals, and refreshes
// UpdatedAt.
func (d *Debtor) AppendRecord(r LedgerRecord) {
	d.Records = append(d.Records, r)
	d.RecomputeTotals()
	d.UpdatedAt = r.Date
}

// NormalizeName produces the lookup key used for case-insensitive debtor
// matching. The stored name keeps the casing of the first occurrence.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
