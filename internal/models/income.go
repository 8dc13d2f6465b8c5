package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Taxable classifications used by the Income sheet. The spelling matches
// the workbook exactly.
const (
	TaxableNo               = "Not-taxable"
	TaxableYes              = "Taxable"
	TaxableFrankedDividends = "Franked Dividends"
)

// IncomeRecord is one row of the Income sheet. FinancialYear and
// TaxableIncome are derived on load, never stored. ID is a generated
// UUID used to address the row for edits and deletes; rows that predate
// the scheme get one on their first rewrite.
type IncomeRecord struct {
	ID              string          `json:"id,omitempty"`
	GrossIncome     decimal.Decimal `json:"gross_income"`
	SalarySacrifice decimal.Decimal `json:"salary_sacrifice"`
	Tax             decimal.Decimal `json:"tax"`
	Income          decimal.Decimal `json:"income"`
	Date            time.Time       `json:"date"`
	Employer        string          `json:"employer"`
	Description     string          `json:"description"`
	Taxable         string          `json:"taxable"`
	ReceivedInBank  bool            `json:"received_in_bank"`
	Comment         string          `json:"comment"`
	FinancialYear   string          `json:"financial_year,omitempty"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
}

// DeductionRecord is one row of the Deductions sheet. FinancialYear is
// derived on load.
type DeductionRecord struct {
	Item          string          `json:"item"`
	Cost          decimal.Decimal `json:"cost"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	FinancialYear string          `json:"financial_year,omitempty"`
}
