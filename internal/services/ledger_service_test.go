package services

import (
	"testing"

	"spendboard/internal/cache"
	"spendboard/internal/models"
	"spendboard/internal/store"
	"spendboard/internal/testutil"
)

func newTestLedgerService(t *testing.T, records []models.SpendingRecord) (LedgerServicer, *store.SpendingStore, *cache.Cache) {
	t.Helper()
	path := testutil.CreateSpendingWorkbook(t, records)
	st := store.NewSpendingStore(path)
	c := cache.New()
	return NewLedgerService(st, c), st, c
}

func TestLedgerInsert(t *testing.T) {
	svc, st, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	})

	inserted, err := svc.Insert(testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", ""))
	testutil.AssertNoError(t, err)
	if inserted.TransactionID == "" {
		t.Error("expected a generated transaction id for a manual entry")
	}

	reloaded, err := st.Records()
	testutil.AssertNoError(t, err)
	if len(reloaded) != 2 {
		t.Fatalf("expected exactly 2 records after insert, got %d", len(reloaded))
	}
	if reloaded[1].Item != "Beer" || reloaded[1].TransactionID != inserted.TransactionID {
		t.Errorf("inserted record not persisted: %+v", reloaded[1])
	}
}

func TestLedgerInsertValidation(t *testing.T) {
	svc, _, _ := newTestLedgerService(t, nil)

	cases := map[string]models.SpendingRecord{
		"missing_item":     testutil.SpendingRecord(t, "", "Sydney", "4.50", "2024-03-01", ""),
		"missing_location": testutil.SpendingRecord(t, "Apples", "", "4.50", "2024-03-01", ""),
		"missing_date":     testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "", ""),
		"negative_cost":    testutil.SpendingRecord(t, "Apples", "Sydney", "-4.50", "2024-03-01", ""),
	}
	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Insert(record)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		})
	}
}

func TestLedgerInsertSortsByDate(t *testing.T) {
	svc, st, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-10", "tx-2"),
	})

	_, err := svc.Insert(testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", ""))
	testutil.AssertNoError(t, err)

	reloaded, err := st.Records()
	testutil.AssertNoError(t, err)
	if reloaded[0].Item != "Apples" || reloaded[1].Item != "Beer" {
		t.Errorf("expected rewrite sorted by date, got %s then %s", reloaded[0].Item, reloaded[1].Item)
	}
}

func TestLedgerCategorise(t *testing.T) {
	svc, st, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	})

	batch := []models.SpendingRecord{
		testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", "bank-1"),
		// Left blank in the editor grid; dropped, not an error.
		testutil.SpendingRecord(t, "", "", "9.00", "2024-03-03", "bank-2"),
		// Already in the ledger; a double submit must not duplicate it.
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	}

	accepted, skipped, err := svc.Categorise(batch)
	testutil.AssertNoError(t, err)
	if accepted != 1 || skipped != 2 {
		t.Fatalf("expected 1 accepted / 2 skipped, got %d / %d", accepted, skipped)
	}

	reloaded, err := st.Records()
	testutil.AssertNoError(t, err)
	if len(reloaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(reloaded))
	}
}

func TestLedgerCategoriseNothingAccepted(t *testing.T) {
	records := []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	}
	svc, st, c := newTestLedgerService(t, records)

	// Warm the cache so we can detect an unnecessary invalidation.
	spending := NewSpendingService(st, c)
	if _, err := spending.EnrichedTransactions(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accepted, skipped, err := svc.Categorise([]models.SpendingRecord{
		testutil.SpendingRecord(t, "", "", "9.00", "2024-03-03", "bank-2"),
	})
	testutil.AssertNoError(t, err)
	if accepted != 0 || skipped != 1 {
		t.Fatalf("expected 0 accepted / 1 skipped, got %d / %d", accepted, skipped)
	}
	if c.Len() != 1 {
		t.Error("an empty batch must not rewrite the workbook or drop the cache")
	}
}

func TestLedgerUpdate(t *testing.T) {
	svc, st, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	})

	replacement := testutil.SpendingRecord(t, "Green Apples", "Sydney", "5.00", "2024-03-01", "tampered-id")
	updated, err := svc.Update("tx-1", replacement)
	testutil.AssertNoError(t, err)
	if updated.TransactionID != "tx-1" {
		t.Errorf("transaction id must be preserved, got %s", updated.TransactionID)
	}

	reloaded, err := st.Records()
	testutil.AssertNoError(t, err)
	if len(reloaded) != 1 || reloaded[0].Item != "Green Apples" || reloaded[0].TransactionID != "tx-1" {
		t.Errorf("unexpected ledger after update: %+v", reloaded)
	}
}

func TestLedgerUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	})

	_, err := svc.Update("no-such-id", testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", ""))
	testutil.AssertAppError(t, err, "RECORD_NOT_FOUND")
}

func TestLedgerDelete(t *testing.T) {
	svc, st, _ := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
		testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", "tx-2"),
	})

	testutil.AssertNoError(t, svc.Delete("tx-1"))

	reloaded, err := st.Records()
	testutil.AssertNoError(t, err)
	if len(reloaded) != 1 || reloaded[0].TransactionID != "tx-2" {
		t.Errorf("unexpected ledger after delete: %+v", reloaded)
	}

	if err := svc.Delete("tx-1"); err == nil {
		t.Fatal("expected delete of a removed id to fail")
	}
	testutil.AssertAppError(t, svc.Delete("no-such-id"), "RECORD_NOT_FOUND")
}

func TestLedgerMutationsInvalidateCache(t *testing.T) {
	svc, st, c := newTestLedgerService(t, []models.SpendingRecord{
		testutil.SpendingRecord(t, "Apples", "Sydney", "4.50", "2024-03-01", "tx-1"),
	})
	spending := NewSpendingService(st, c)

	before, err := spending.EnrichedTransactions()
	testutil.AssertNoError(t, err)
	if len(before) != 1 {
		t.Fatalf("expected 1 row before insert, got %d", len(before))
	}

	_, err = svc.Insert(testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", ""))
	testutil.AssertNoError(t, err)

	after, err := spending.EnrichedTransactions()
	testutil.AssertNoError(t, err)
	if len(after) != 2 {
		t.Fatalf("expected insert to be visible on the next read, got %d rows", len(after))
	}
}
