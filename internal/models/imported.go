package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportedTransaction is a bank transaction fetched from the Up Bank CSV
// service, normalised to the spending vocabulary. The service reports
// debits as negative amounts; Cost carries the negated value so an expense
// is positive, matching SpendingRecord. Item and Location are left blank
// until the user categorises the transaction.
type ImportedTransaction struct {
	TransactionID  string          `json:"transaction_id"`
	Cost           decimal.Decimal `json:"cost"`
	Shop           string          `json:"shop"`
	UpbankText     string          `json:"upbank_text"`
	UpbankCategory string          `json:"upbank_category"`
	Date           time.Time       `json:"date"`
}
