package services

import (
	"testing"
	"time"

	"spendboard/internal/models"
	"spendboard/internal/testutil"
)

// reportLedger builds the fixed enriched view the report tests share.
// The fixture workbook's hierarchy maps Apples to Week by Week via
// Groceries, Beer to Wants via Fun, and Stuff to Wants via Miscellaneous.
func reportLedger(t *testing.T) ReportServicer {
	t.Helper()

	enrich := func(record models.SpendingRecord, subSub, sub, category, tag, shop string) models.EnrichedTransaction {
		record.Tag = tag
		record.Shop = shop
		return models.EnrichedTransaction{
			SpendingRecord: record,
			SubSubCategory: subSub,
			SubCategory:    sub,
			Category:       category,
		}
	}

	return NewReportService(&stubSpending{transactions: []models.EnrichedTransaction{
		enrich(testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
			"Fruit", "Groceries", "Week by Week", "weekly shop", "Woolworths"),
		enrich(testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-05", "tx-2"),
			"Alcohol", "Fun", "Wants", "", "Dan Murphy's"),
		enrich(testutil.SpendingRecord(t, "Stuff", "Sydney", "20.00", "2024-03-10", "tx-3"),
			"Odds and Ends", "Miscellaneous", "Wants", "", "Kmart"),
		enrich(testutil.SpendingRecord(t, "Mystery", "Perth", "7.00", "2024-04-01", "tx-4"),
			"", "", "", "weekly shop", "Woolworths"),
	}})
}

func TestTransactionsFilter(t *testing.T) {
	svc := reportLedger(t)

	t.Run("unfiltered", func(t *testing.T) {
		transactions, err := svc.Transactions(Filter{})
		testutil.AssertNoError(t, err)
		if len(transactions) != 4 {
			t.Errorf("expected 4 transactions, got %d", len(transactions))
		}
	})

	t.Run("date_bounds_inclusive", func(t *testing.T) {
		start := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		transactions, err := svc.Transactions(Filter{Start: start, End: end})
		testutil.AssertNoError(t, err)
		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions in window, got %d", len(transactions))
		}
		if transactions[0].Item != "Beer" || transactions[1].Item != "Stuff" {
			t.Errorf("unexpected window contents: %+v", transactions)
		}
	})

	t.Run("by_category", func(t *testing.T) {
		transactions, err := svc.Transactions(Filter{Categories: []string{"Wants"}})
		testutil.AssertNoError(t, err)
		if len(transactions) != 2 {
			t.Errorf("expected 2 Wants transactions, got %d", len(transactions))
		}
	})

	t.Run("by_tag_and_shop", func(t *testing.T) {
		transactions, err := svc.Transactions(Filter{Tags: []string{"weekly shop"}, Shops: []string{"Woolworths"}})
		testutil.AssertNoError(t, err)
		if len(transactions) != 2 {
			t.Errorf("expected 2 matches, got %d", len(transactions))
		}
	})

	t.Run("no_match", func(t *testing.T) {
		transactions, err := svc.Transactions(Filter{SubCategories: []string{"Rent"}})
		testutil.AssertNoError(t, err)
		if len(transactions) != 0 {
			t.Errorf("expected no matches, got %d", len(transactions))
		}
	})
}

func TestSummarise(t *testing.T) {
	svc := reportLedger(t)

	summary, err := svc.Summarise(Filter{})
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, summary.TotalCost, "43.5")
	testutil.AssertDecimal(t, summary.Discretionary, "32")
	testutil.AssertDecimal(t, summary.Miscellaneous, "20")
	testutil.AssertDecimal(t, summary.Necessary, "4.5")
	if summary.Transactions != 4 {
		t.Errorf("expected 4 transactions, got %d", summary.Transactions)
	}
}

func TestBreakdown(t *testing.T) {
	svc := reportLedger(t)

	t.Run("by_shop_sorted_by_cost", func(t *testing.T) {
		rows, err := svc.Breakdown(Filter{}, BreakdownByShop, 0)
		testutil.AssertNoError(t, err)
		if len(rows) != 3 {
			t.Fatalf("expected 3 shops, got %d", len(rows))
		}
		if rows[0].Key != "Kmart" {
			t.Errorf("expected the costliest shop first, got %s", rows[0].Key)
		}
		testutil.AssertDecimal(t, rows[1].TotalCost, "12")
		// Woolworths groups both of its transactions.
		if rows[2].Key != "Woolworths" {
			t.Errorf("unexpected final row: %+v", rows[2])
		}
		testutil.AssertDecimal(t, rows[2].TotalCost, "11.5")
	})

	t.Run("empty_keys_skipped", func(t *testing.T) {
		rows, err := svc.Breakdown(Filter{}, BreakdownByTag, 0)
		testutil.AssertNoError(t, err)
		if len(rows) != 1 || rows[0].Key != "weekly shop" {
			t.Fatalf("expected only the tagged group, got %+v", rows)
		}
		testutil.AssertDecimal(t, rows[0].TotalCost, "11.5")
	})

	t.Run("limit_truncates", func(t *testing.T) {
		rows, err := svc.Breakdown(Filter{}, BreakdownByShop, 1)
		testutil.AssertNoError(t, err)
		if len(rows) != 1 || rows[0].Key != "Kmart" {
			t.Errorf("expected only the top shop, got %+v", rows)
		}
	})

	t.Run("by_date", func(t *testing.T) {
		rows, err := svc.Breakdown(Filter{}, BreakdownByDate, 0)
		testutil.AssertNoError(t, err)
		if len(rows) != 4 {
			t.Errorf("expected 4 dates, got %d", len(rows))
		}
	})
}

func TestParseBreakdownDimension(t *testing.T) {
	dim, err := ParseBreakdownDimension("sub_category")
	testutil.AssertNoError(t, err)
	if dim != BreakdownBySubCategory {
		t.Errorf("unexpected dimension: %s", dim)
	}

	_, err = ParseBreakdownDimension("vibes")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestCategoryTree(t *testing.T) {
	svc := reportLedger(t)

	rows, err := svc.CategoryTree(Filter{})
	testutil.AssertNoError(t, err)
	if len(rows) != 4 {
		t.Fatalf("expected 4 chains, got %d", len(rows))
	}

	// The unresolved chain sorts first and keeps its cost visible.
	if rows[0].Category != "" || rows[0].SubCategory != "" {
		t.Errorf("expected empty chain first, got %+v", rows[0])
	}
	testutil.AssertDecimal(t, rows[0].TotalCost, "7")

	last := rows[len(rows)-1]
	if last.Category != "Week by Week" || last.SubSubCategory != "Fruit" {
		t.Errorf("unexpected final chain: %+v", last)
	}
}
