// Package jsonbin persists the debtor collection as a single JSON document
// in a JSONBin.io-style bin. The bin offers only whole-document GET/PUT, so
// every save replaces the entire document; concurrent writers race with
// last-write-wins semantics.
package jsonbin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/furiksayram-commits/debt-tracker/internal/apperrors"
	"github.com/furiksayram-commits/debt-tracker/internal/core/domain"
)

const masterKeyHeader = "X-Master-Key"

// document is the persisted bin payload.
type document struct {
	Debts []domain.Debtor `json:"debts"`
}

// readEnvelope is the bin read response; the document sits under "record".
type readEnvelope struct {
	Record document `json:"record"`
}

// Store reads and writes the ledger document in one bin.
type Store struct {
	client  *http.Client
	baseURL string
	binID   string
	apiKey  string
}

// Config holds the out-of-band bin coordinates and access credential.
type Config struct {
	BaseURL string // e.g. https://api.jsonbin.io/v3
	BinID   string
	APIKey  string
	Timeout time.Duration
}

// NewStore creates a Store for the configured bin.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		binID:   cfg.BinID,
		apiKey:  cfg.APIKey,
	}
}

// Load fetches the current document. A bin that does not exist yet (404, or
// 400 from an empty bin) is treated as "no data yet": the bin is initialized
// with an empty document and an empty collection is returned. Transport and
// other HTTP failures surface as ErrStorage.
func (s *Store) Load(ctx context.Context) ([]domain.Debtor, error) {
	url := fmt.Sprintf("%s/b/%s/latest", s.baseURL, s.binID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build bin read request: %v", apperrors.ErrStorage, err)
	}
	req.Header.Set(masterKeyHeader, s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: read bin %s: %v", apperrors.ErrStorage, s.binID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		// Bin missing or empty: bootstrap it so subsequent reads succeed.
		if err := s.Save(ctx, []domain.Debtor{}); err != nil {
			return nil, err
		}
		return []domain.Debtor{}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: read bin %s: unexpected status %d", apperrors.ErrStorage, s.binID, resp.StatusCode)
	}

	var envelope readEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode bin %s: %v", apperrors.ErrStorage, s.binID, err)
	}
	if envelope.Record.Debts == nil {
		return []domain.Debtor{}, nil
	}
	return envelope.Record.Debts, nil
}

// Save replaces the entire bin document with the given collection.
func (s *Store) Save(ctx context.Context, debtors []domain.Debtor) error {
	if debtors == nil {
		debtors = []domain.Debtor{}
	}
	body, err := json.Marshal(document{Debts: debtors})
	if err != nil {
		return fmt.Errorf("%w: encode ledger document: %v", apperrors.ErrStorage, err)
	}

	url := fmt.Sprintf("%s/b/%s", s.baseURL, s.binID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build bin write request: %v", apperrors.ErrStorage, err)
	}
	req.Header.Set(masterKeyHeader, s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: write bin %s: %v", apperrors.ErrStorage, s.binID, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: write bin %s: unexpected status %d", apperrors.ErrStorage, s.binID, resp.StatusCode)
	}
	return nil
}
