package services

import (
	"spendboard/internal/cache"
	"spendboard/internal/models"
	"spendboard/internal/store"
)

// spendingCachePrefix keys the enriched-ledger pipeline in the cache.
// Mutations invalidate this prefix so the next read reloads the workbook.
const spendingCachePrefix = "spending"

// spendingService produces the enriched transaction view: each spending
// row left-joined with its category chain and location attributes.
type spendingService struct {
	store *store.SpendingStore
	cache *cache.Cache
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(st *store.SpendingStore, c *cache.Cache) SpendingServicer {
	return &spendingService{store: st, cache: c}
}

// EnrichedTransactions returns the canonical read model. The result is
// memoized against the workbook path until a mutation invalidates it.
func (s *spendingService) EnrichedTransactions() ([]models.EnrichedTransaction, error) {
	key := cache.Key(spendingCachePrefix, s.store.Path())
	value, err := s.cache.GetOrLoad(key, func() (interface{}, error) {
		return s.load()
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.EnrichedTransaction), nil
}

// load runs the full read pipeline: raw rows, reference tables, then the
// two left joins. Both joins are lookups against deduplicated maps, so a
// record can never match more than one reference row and the output row
// count always equals the input row count. Records with no match keep
// empty category fields and a nil LocationInfo rather than being dropped.
func (s *spendingService) load() ([]models.EnrichedTransaction, error) {
	records, err := s.store.Records()
	if err != nil {
		return nil, err
	}
	tables, err := s.store.ReferenceTables()
	if err != nil {
		return nil, err
	}

	hierarchy := hierarchyLookup(ResolveHierarchy(tables))
	locations := locationLookup(tables.Locations)

	enriched := make([]models.EnrichedTransaction, 0, len(records))
	for _, record := range records {
		e := models.EnrichedTransaction{SpendingRecord: record}
		if entry, ok := hierarchy[record.Item]; ok {
			e.SubSubCategory = entry.SubSubCategory
			e.SubCategory = entry.SubCategory
			e.Category = entry.Category
		}
		if info, ok := locations[record.Location]; ok {
			e.LocationInfo = &info
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}
