package services

import (
	"context"
	"time"

	"spendboard/internal/cache"
	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/upbank"
)

// transactionsCachePrefix keys the external fetch pipeline, parameterised
// by the requested window.
const transactionsCachePrefix = "transactions"

// importService fetches bank transactions and reconciles them against the
// categorised ledger by transaction id.
type importService struct {
	client   *upbank.Client
	spending SpendingServicer
	cache    *cache.Cache
}

// NewImportService creates a new ImportServicer.
func NewImportService(client *upbank.Client, spending SpendingServicer, c *cache.Cache) ImportServicer {
	return &importService{client: client, spending: spending, cache: c}
}

// FetchWindow returns the transactions created in [start, end], memoized
// per window. A network failure or non-success status is reported as an
// EXTERNAL_SERVICE_FAILURE so callers can degrade instead of aborting.
func (s *importService) FetchWindow(ctx context.Context, start, end time.Time) ([]models.ImportedTransaction, error) {
	key := cache.Key(transactionsCachePrefix, start.Format("2006-01-02"), end.Format("2006-01-02"))
	value, err := s.cache.GetOrLoad(key, func() (interface{}, error) {
		transactions, err := s.client.FetchTransactions(ctx, start, end)
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.WithMessage(apperrors.ErrExternalService,
					"Please check that the transaction service is running at "+s.client.BaseURL()),
				err,
			)
		}
		return transactions, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.ImportedTransaction), nil
}

// Uncategorised returns the fetched transactions whose id is not yet in
// the ledger. The set difference is keyed on the stable bank transaction
// id, so a transaction accepted into the ledger never reappears here,
// even across repeated fetches of overlapping windows.
func (s *importService) Uncategorised(ctx context.Context, start, end time.Time) ([]models.ImportedTransaction, error) {
	imported, err := s.FetchWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ledger, err := s.spending.EnrichedTransactions()
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(ledger))
	for _, t := range ledger {
		if t.TransactionID != "" {
			known[t.TransactionID] = struct{}{}
		}
	}

	uncategorised := make([]models.ImportedTransaction, 0, len(imported))
	for _, t := range imported {
		if _, ok := known[t.TransactionID]; ok {
			continue
		}
		uncategorised = append(uncategorised, t)
	}
	return uncategorised, nil
}
