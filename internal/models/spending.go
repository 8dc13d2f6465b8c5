package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Measure units accepted for the Quantity field.
const (
	MeasureGrams      = "g"
	MeasureKilograms  = "kg"
	MeasureLitres     = "L"
	MeasureMilligrams = "mg"
	MeasurePounds     = "lbs"
)

// SpendingRecord is one row of the Spending sheet. Cost is signed with
// positive values representing an expense. TransactionID is the Up Bank
// transaction id for imported rows, or a generated UUID for manual entries.
type SpendingRecord struct {
	Item          string          `json:"item"`
	Cost          decimal.Decimal `json:"cost"`
	Quantity      decimal.Decimal `json:"quantity"`
	Measure       string          `json:"measure"`
	Location      string          `json:"location"`
	Shop          string          `json:"shop"`
	Details       string          `json:"details"`
	Tag           string          `json:"tag"`
	Date          time.Time       `json:"date"`
	ReceiptRef    string          `json:"receipt_ref"`
	Receipt       string          `json:"receipt"`
	TransactionID string          `json:"transaction_id"`
}

// EnrichedTransaction is a SpendingRecord left-joined with its category
// hierarchy and location attributes. Unmatched joins leave the category
// fields empty and LocationInfo nil; the record itself is never dropped.
type EnrichedTransaction struct {
	SpendingRecord
	SubSubCategory string        `json:"sub_sub_category,omitempty"`
	SubCategory    string        `json:"sub_category,omitempty"`
	Category       string        `json:"category,omitempty"`
	LocationInfo   *LocationInfo `json:"location_info,omitempty"`
}
