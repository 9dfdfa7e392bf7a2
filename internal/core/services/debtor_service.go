package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/furiksayram-commits/debt-tracker/internal/apperrors"
	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
	"github.com/furiksayram-commits/debt-tracker/internal/core/ports"
	"github.com/furiksayram-commits/debt-tracker/internal/dto"
	"github.com/google/uuid"
)

// DebtorService owns the domain rules over the debtor collection. Every
// operation is structured as reload, mutate, persist: the service holds no
// collection state across calls beyond the lifetime of one operation's
// reload, which narrows (but does not close) the race window against writers
// in other processes. Mutations within one process are serialized by mu.
type DebtorService struct {
	store ports.DebtorStore
	mu    sync.Mutex
	now   func() time.Time
}

// NewDebtorService creates a new DebtorService over the given store.
func NewDebtorService(store ports.DebtorStore) *DebtorService {
	return &DebtorService{store: store, now: time.Now}
}

// AddDebt records a debt for the named person. A trimmed, case-insensitive
// name match appends to the existing debtor (optionally refreshing its
// phone); otherwise a new debtor is created. The supplied amount is taken as
// an absolute value rather than rejected when negative.
func (s *DebtorService) AddDebt(ctx context.Context, req dto.AddDebtRequest) (*domain.Debtor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	amount := req.Amount.Abs()

	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload debtors: %w", err)
	}

	now := s.now()
	record := domain.LedgerRecord{
		RecordID: uuid.NewString(),
		Kind:     domain.KindDebt,
		Amount:   amount,
		Comment:  strings.TrimSpace(req.Comment),
		Date:     now,
	}

	normalized := domain.NormalizeName(name)
	for i := range debtors {
		if domain.NormalizeName(debtors[i].Name) != normalized {
			continue
		}
		debtors[i].AppendRecord(record)
		if req.Phone != "" {
			debtors[i].Phone = req.Phone
		}
		if err := s.store.Save(ctx, debtors); err != nil {
			return nil, fmt.Errorf("failed to persist debtors: %w", err)
		}
		return &debtors[i], nil
	}

	debtor := domain.Debtor{
		DebtorID:  uuid.NewString(),
		Name:      name,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	debtor.AppendRecord(record)
	debtors = append(debtors, debtor)
	if err := s.store.Save(ctx, debtors); err != nil {
		return nil, fmt.Errorf("failed to persist debtors: %w", err)
	}
	return &debtors[len(debtors)-1], nil
}

// AddDebtTo appends a debt record to an existing debtor located by id.
// Unlike AddDebt, the amount must be strictly positive.
func (s *DebtorService) AddDebtTo(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error) {
	return s.appendRecord(ctx, debtorID, domain.KindDebt, req)
}

// RecordPayment appends a payment record to an existing debtor. The amount
// must be strictly positive. No check prevents the payment from exceeding
// the outstanding balance; overpayment is a valid state.
func (s *DebtorService) RecordPayment(ctx context.Context, debtorID string, req dto.AddRecordRequest) (*domain.Debtor, error) {
	return s.appendRecord(ctx, debtorID, domain.KindPayment, req)
}

func (s *DebtorService) appendRecord(ctx context.Context, debtorID string, kind domain.RecordKind, req dto.AddRecordRequest) (*domain.Debtor, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload debtors: %w", err)
	}

	for i := range debtors {
		if debtors[i].DebtorID != debtorID {
			continue
		}
		debtors[i].AppendRecord(domain.LedgerRecord{
			RecordID: uuid.NewString(),
			Kind:     kind,
			Amount:   req.Amount,
			Comment:  strings.TrimSpace(req.Comment),
			Date:     s.now(),
		})
		if err := s.store.Save(ctx, debtors); err != nil {
			return nil, fmt.Errorf("failed to persist debtors: %w", err)
		}
		return &debtors[i], nil
	}
	return nil, fmt.Errorf("%w: debtor %s", apperrors.ErrNotFound, debtorID)
}

// DeleteDebtor removes the matching debtor and its entire record history,
// then persists the remainder. Returns the removed debtor's name.
func (s *DebtorService) DeleteDebtor(ctx context.Context, debtorID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to reload debtors: %w", err)
	}

	for i := range debtors {
		if debtors[i].DebtorID != debtorID {
			continue
		}
		name := debtors[i].Name
		remaining := append(debtors[:i:i], debtors[i+1:]...)
		if err := s.store.Save(ctx, remaining); err != nil {
			return "", fmt.Errorf("failed to persist debtors: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("%w: debtor %s", apperrors.ErrNotFound, debtorID)
}

// ListAll reloads and returns the full collection unfiltered, in storage
// order. Display ordering is a presentation concern left to the client.
func (s *DebtorService) ListAll(ctx context.Context) ([]domain.Debtor, error) {
	debtors, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load debtors: %w", err)
	}
	if debtors == nil {
		return []domain.Debtor{}, nil
	}
	return debtors, nil
}

// Search reloads the collection and returns debtors whose name contains the
// query case-insensitively. An empty query returns the full collection.
func (s *DebtorService) Search(ctx context.Context, query string) ([]domain.Debtor, error) {
	debtors, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return debtors, nil
	}

	needle := strings.ToLower(query)
	filtered := []domain.Debtor{}
	for _, d := range debtors {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
