package store

import (
	"testing"

	"spendboard/internal/models"
	"spendboard/internal/testutil"
)

func TestSpendingStoreRecords(t *testing.T) {
	path := testutil.CreateSpendingWorkbook(t, testRecordSeeds{
		{"Apples", "Sydney", "4.50", "2024-03-01", "tx-1"},
		{"Beer", "Melbourne", "12.00", "2024-03-02", "tx-2"},
	}.records(t))
	store := NewSpendingStore(path)

	records, err := store.Records()
	testutil.AssertNoError(t, err)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Item != "Apples" {
		t.Errorf("expected item Apples, got %s", records[0].Item)
	}
	testutil.AssertDecimal(t, records[0].Cost, "4.50")
	if records[0].Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("unexpected date: %v", records[0].Date)
	}
	if records[1].TransactionID != "tx-2" {
		t.Errorf("expected transaction id tx-2, got %s", records[1].TransactionID)
	}
}

func TestSpendingStoreReferenceTables(t *testing.T) {
	path := testutil.CreateSpendingWorkbook(t, nil)
	store := NewSpendingStore(path)

	tables, err := store.ReferenceTables()
	testutil.AssertNoError(t, err)

	if len(tables.Base) != 6 {
		t.Errorf("expected 6 base rows, got %d", len(tables.Base))
	}
	if tables.Base[0].Item != "Apples" || tables.Base[0].SubSubCategory != "Fruit" {
		t.Errorf("All Items column not canonicalised to Item: %+v", tables.Base[0])
	}
	if len(tables.Middle) != 4 {
		t.Errorf("expected 4 middle rows, got %d", len(tables.Middle))
	}
	if len(tables.Top) != 3 {
		t.Errorf("expected 3 top rows, got %d", len(tables.Top))
	}

	if len(tables.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(tables.Locations))
	}
	sydney := tables.Locations[0]
	if sydney.Name != "Sydney" || sydney.State != "NSW" {
		t.Errorf("unexpected location: %+v", sydney)
	}
	if sydney.Latitude == nil || *sydney.Latitude > -33 || *sydney.Latitude < -34 {
		t.Errorf("unexpected latitude: %v", sydney.Latitude)
	}
	if tables.Locations[1].Latitude != nil {
		t.Error("expected nil latitude for blank cell")
	}
}

func TestSpendingStoreReplace(t *testing.T) {
	seed := testRecordSeeds{
		{"Apples", "Sydney", "4.50", "2024-03-01", "tx-1"},
	}
	path := testutil.CreateSpendingWorkbook(t, seed.records(t))
	store := NewSpendingStore(path)

	records, err := store.Records()
	testutil.AssertNoError(t, err)
	records = append(records, testutil.SpendingRecord(t, "Beer", "Melbourne", "12.00", "2024-03-02", "tx-2"))

	testutil.AssertNoError(t, store.Replace(records))

	t.Run("records_roundtrip", func(t *testing.T) {
		reloaded, err := store.Records()
		testutil.AssertNoError(t, err)
		if len(reloaded) != 2 {
			t.Fatalf("expected 2 records after replace, got %d", len(reloaded))
		}
		testutil.AssertDecimal(t, reloaded[1].Cost, "12.00")
		if reloaded[1].TransactionID != "tx-2" {
			t.Errorf("transaction id lost on rewrite: %+v", reloaded[1])
		}
	})

	t.Run("reference_sheets_preserved", func(t *testing.T) {
		tables, err := store.ReferenceTables()
		testutil.AssertNoError(t, err)
		if len(tables.Base) == 0 || len(tables.Locations) == 0 {
			t.Error("reference sheets lost by spending rewrite")
		}
	})
}

func TestSpendingStoreMissingWorkbook(t *testing.T) {
	store := NewSpendingStore("/nonexistent/spending.xlsx")

	_, err := store.Records()
	testutil.AssertAppError(t, err, "WORKBOOK_UNREADABLE")
}

// testRecordSeed keeps fixture tables compact.
type testRecordSeed struct {
	item, location, cost, date, txID string
}

type testRecordSeeds []testRecordSeed

func (s testRecordSeeds) records(t *testing.T) []models.SpendingRecord {
	t.Helper()
	out := make([]models.SpendingRecord, 0, len(s))
	for _, seed := range s {
		out = append(out, testutil.SpendingRecord(t, seed.item, seed.location, seed.cost, seed.date, seed.txID))
	}
	return out
}
