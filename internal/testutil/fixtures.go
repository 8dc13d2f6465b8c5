package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendboard/internal/models"
)

// SpendingRecord builds a record with the fields tests care about. Cost
// and date are parsed so fixtures read naturally at call sites.
func SpendingRecord(t *testing.T, item, location, cost, date, transactionID string) models.SpendingRecord {
	t.Helper()

	c, err := decimal.NewFromString(cost)
	if err != nil {
		t.Fatalf("bad fixture cost %q: %v", cost, err)
	}
	var d time.Time
	if date != "" {
		d, err = time.Parse("2006-01-02", date)
		if err != nil {
			t.Fatalf("bad fixture date %q: %v", date, err)
		}
	}
	return models.SpendingRecord{
		Item:          item,
		Cost:          c,
		Location:      location,
		Date:          d,
		TransactionID: transactionID,
	}
}
