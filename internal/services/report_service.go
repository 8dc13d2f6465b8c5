package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
)

// Filter narrows the enriched ledger for a report. Zero times leave the
// date range unbounded on that side; bounds are inclusive. Empty slices
// apply no filter for that field.
type Filter struct {
	Start         time.Time
	End           time.Time
	Tags          []string
	Shops         []string
	SubCategories []string
	Categories    []string
}

// Summary holds the headline metrics for a filtered view. Discretionary
// sums the "Wants" category, Miscellaneous the "Miscellaneous"
// sub-category, and Necessary the "Week by Week" category.
type Summary struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	Discretionary decimal.Decimal `json:"discretionary"`
	Miscellaneous decimal.Decimal `json:"miscellaneous"`
	Necessary     decimal.Decimal `json:"necessary"`
	Transactions  int             `json:"transactions"`
}

// BreakdownDimension selects the grouping key for a cost breakdown.
type BreakdownDimension string

const (
	BreakdownByTag            BreakdownDimension = "tag"
	BreakdownByShop           BreakdownDimension = "shop"
	BreakdownByLocation       BreakdownDimension = "location"
	BreakdownByCategory       BreakdownDimension = "category"
	BreakdownBySubCategory    BreakdownDimension = "sub_category"
	BreakdownBySubSubCategory BreakdownDimension = "sub_sub_category"
	BreakdownByDate           BreakdownDimension = "date"
)

// ParseBreakdownDimension validates a dimension name.
func ParseBreakdownDimension(s string) (BreakdownDimension, error) {
	switch BreakdownDimension(s) {
	case BreakdownByTag, BreakdownByShop, BreakdownByLocation, BreakdownByCategory,
		BreakdownBySubCategory, BreakdownBySubSubCategory, BreakdownByDate:
		return BreakdownDimension(s), nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown breakdown dimension: "+s)
}

// BreakdownRow is one group in a cost breakdown.
type BreakdownRow struct {
	Key       string          `json:"key"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// CategoryTreeRow is one leaf of the category rollup: the full chain and
// the summed cost under it.
type CategoryTreeRow struct {
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category"`
	SubSubCategory string          `json:"sub_sub_category"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

// defaultBreakdownLimit caps breakdown rows the way the dashboard charts
// cap their bars.
const defaultBreakdownLimit = 20

// reportService computes the filtered and aggregated views over the
// enriched ledger.
type reportService struct {
	spending SpendingServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(spending SpendingServicer) ReportServicer {
	return &reportService{spending: spending}
}

// Transactions returns the enriched ledger narrowed by the filter.
func (s *reportService) Transactions(filter Filter) ([]models.EnrichedTransaction, error) {
	all, err := s.spending.EnrichedTransactions()
	if err != nil {
		return nil, err
	}
	return applyFilter(all, filter), nil
}

// Summarise computes the headline metrics for the filtered view.
func (s *reportService) Summarise(filter Filter) (*Summary, error) {
	transactions, err := s.Transactions(filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Transactions: len(transactions)}
	for _, t := range transactions {
		summary.TotalCost = summary.TotalCost.Add(t.Cost)
		if t.Category == "Wants" {
			summary.Discretionary = summary.Discretionary.Add(t.Cost)
		}
		if t.SubCategory == "Miscellaneous" {
			summary.Miscellaneous = summary.Miscellaneous.Add(t.Cost)
		}
		if t.Category == "Week by Week" {
			summary.Necessary = summary.Necessary.Add(t.Cost)
		}
	}
	return summary, nil
}

// Breakdown groups the filtered view by the given dimension and returns
// the top groups by summed cost, descending. Rows with an empty key are
// left out of the grouping. A non-positive limit applies the default.
func (s *reportService) Breakdown(filter Filter, dim BreakdownDimension, limit int) ([]BreakdownRow, error) {
	transactions, err := s.Transactions(filter)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBreakdownLimit
	}

	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		key := breakdownKey(t, dim)
		if key == "" {
			continue
		}
		totals[key] = totals[key].Add(t.Cost)
	}

	rows := make([]BreakdownRow, 0, len(totals))
	for key, total := range totals {
		rows = append(rows, BreakdownRow{Key: key, TotalCost: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalCost.Equal(rows[j].TotalCost) {
			return rows[i].TotalCost.GreaterThan(rows[j].TotalCost)
		}
		return rows[i].Key < rows[j].Key
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// CategoryTree rolls the filtered view up over the full category chain.
// Rows that did not resolve to a hierarchy entry are grouped under the
// empty chain so their cost is still visible.
func (s *reportService) CategoryTree(filter Filter) ([]CategoryTreeRow, error) {
	transactions, err := s.Transactions(filter)
	if err != nil {
		return nil, err
	}

	type chain struct{ category, sub, subSub string }
	totals := make(map[chain]decimal.Decimal)
	for _, t := range transactions {
		c := chain{t.Category, t.SubCategory, t.SubSubCategory}
		totals[c] = totals[c].Add(t.Cost)
	}

	rows := make([]CategoryTreeRow, 0, len(totals))
	for c, total := range totals {
		rows = append(rows, CategoryTreeRow{
			Category:       c.category,
			SubCategory:    c.sub,
			SubSubCategory: c.subSub,
			TotalCost:      total,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].SubCategory != rows[j].SubCategory {
			return rows[i].SubCategory < rows[j].SubCategory
		}
		return rows[i].SubSubCategory < rows[j].SubSubCategory
	})
	return rows, nil
}

func applyFilter(transactions []models.EnrichedTransaction, filter Filter) []models.EnrichedTransaction {
	tags := toSet(filter.Tags)
	shops := toSet(filter.Shops)
	subCategories := toSet(filter.SubCategories)
	categories := toSet(filter.Categories)

	filtered := make([]models.EnrichedTransaction, 0, len(transactions))
	for _, t := range transactions {
		if !filter.Start.IsZero() && t.Date.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && t.Date.After(filter.End) {
			continue
		}
		if tags != nil && !tags[t.Tag] {
			continue
		}
		if shops != nil && !shops[t.Shop] {
			continue
		}
		if subCategories != nil && !subCategories[t.SubCategory] {
			continue
		}
		if categories != nil && !categories[t.Category] {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func breakdownKey(t models.EnrichedTransaction, dim BreakdownDimension) string {
	switch dim {
	case BreakdownByTag:
		return t.Tag
	case BreakdownByShop:
		return t.Shop
	case BreakdownByLocation:
		return t.Location
	case BreakdownByCategory:
		return t.Category
	case BreakdownBySubCategory:
		return t.SubCategory
	case BreakdownBySubSubCategory:
		return t.SubSubCategory
	case BreakdownByDate:
		if t.Date.IsZero() {
			return ""
		}
		return t.Date.Format("2006-01-02")
	}
	return ""
}
