package services

import (
	"sort"

	"spendboard/internal/cache"
	apperrors "spendboard/internal/errors"
	"spendboard/internal/logger"
	"spendboard/internal/models"
	"spendboard/internal/store"
	"spendboard/internal/uuid"
)

// ledgerService applies inserts, edits and deletes to the spending ledger
// and persists the result as a full-sheet rewrite. Rows are addressed by
// transaction id, never by position: the id is the bank id for imported
// rows and a generated UUID for manual entries, assigned at insert time
// (or on first rewrite for legacy rows that predate the scheme).
type ledgerService struct {
	store *store.SpendingStore
	cache *cache.Cache
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(st *store.SpendingStore, c *cache.Cache) LedgerServicer {
	return &ledgerService{store: st, cache: c}
}

// Insert validates and appends a manually entered record. A blank
// transaction id gets a generated UUID so the row stays addressable.
func (s *ledgerService) Insert(record models.SpendingRecord) (*models.SpendingRecord, error) {
	if record.Item == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item is required")
	}
	if record.Location == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "location is required")
	}
	if record.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if record.Cost.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cost must not be negative")
	}
	if record.TransactionID == "" {
		record.TransactionID = uuid.New()
	}

	records, err := s.store.Records()
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.persist(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Categorise accepts a batch of previously uncategorised transactions the
// user has filled in. Rows still missing Item or Location are filtered
// out silently, and rows whose transaction id is already in the ledger
// are skipped so a double submit cannot duplicate them.
func (s *ledgerService) Categorise(batch []models.SpendingRecord) (accepted, skipped int, err error) {
	records, err := s.store.Records()
	if err != nil {
		return 0, 0, err
	}
	known := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.TransactionID != "" {
			known[r.TransactionID] = struct{}{}
		}
	}

	for _, row := range batch {
		if row.Item == "" || row.Location == "" {
			skipped++
			continue
		}
		if _, ok := known[row.TransactionID]; ok && row.TransactionID != "" {
			logger.Get().Warnw("skipping already categorised transaction", "transaction_id", row.TransactionID)
			skipped++
			continue
		}
		if row.TransactionID == "" {
			row.TransactionID = uuid.New()
		}
		known[row.TransactionID] = struct{}{}
		records = append(records, row)
		accepted++
	}

	if accepted == 0 {
		return accepted, skipped, nil
	}
	if err := s.persist(records); err != nil {
		return 0, 0, err
	}
	return accepted, skipped, nil
}

// Update replaces the record with the given transaction id. The id is
// preserved verbatim regardless of what the replacement carries.
func (s *ledgerService) Update(transactionID string, record models.SpendingRecord) (*models.SpendingRecord, error) {
	records, err := s.store.Records()
	if err != nil {
		return nil, err
	}

	index := findByTransactionID(records, transactionID)
	if index < 0 {
		return nil, apperrors.ErrRecordNotFound
	}
	record.TransactionID = transactionID
	records[index] = record

	if err := s.persist(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the record with the given transaction id.
func (s *ledgerService) Delete(transactionID string) error {
	records, err := s.store.Records()
	if err != nil {
		return err
	}

	index := findByTransactionID(records, transactionID)
	if index < 0 {
		return apperrors.ErrRecordNotFound
	}
	records = append(records[:index], records[index+1:]...)

	return s.persist(records)
}

// persist rewrites the whole Spending sheet sorted by date and then
// invalidates the spending pipeline cache so the next read observes the
// write. Legacy rows without a transaction id are assigned one here.
func (s *ledgerService) persist(records []models.SpendingRecord) error {
	for i := range records {
		if records[i].TransactionID == "" {
			records[i].TransactionID = uuid.New()
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	if err := s.store.Replace(records); err != nil {
		return err
	}
	s.cache.Invalidate(spendingCachePrefix)
	return nil
}

func findByTransactionID(records []models.SpendingRecord, transactionID string) int {
	if transactionID == "" {
		return -1
	}
	for i, r := range records {
		if r.TransactionID == transactionID {
			return i
		}
	}
	return -1
}
