package services

import (
	"context"
	"time"

	"spendboard/internal/models"
)

// SpendingServicer produces the canonical enriched transaction view.
type SpendingServicer interface {
	EnrichedTransactions() ([]models.EnrichedTransaction, error)
}

// ImportServicer fetches bank transactions and reconciles them against
// the categorised ledger.
type ImportServicer interface {
	FetchWindow(ctx context.Context, start, end time.Time) ([]models.ImportedTransaction, error)
	Uncategorised(ctx context.Context, start, end time.Time) ([]models.ImportedTransaction, error)
}

// LedgerServicer applies mutations to the spending ledger and persists
// them back to the workbook.
type LedgerServicer interface {
	Insert(record models.SpendingRecord) (*models.SpendingRecord, error)
	Categorise(batch []models.SpendingRecord) (accepted, skipped int, err error)
	Update(transactionID string, record models.SpendingRecord) (*models.SpendingRecord, error)
	Delete(transactionID string) error
}

// IncomeServicer loads income and deduction records with derived fields
// and applies income mutations, persisted as a full-sheet rewrite.
type IncomeServicer interface {
	IncomeRecords() ([]models.IncomeRecord, error)
	Deductions() ([]models.DeductionRecord, error)
	IncomeSummary() ([]FinancialYearSummary, error)
	Insert(record models.IncomeRecord) (*models.IncomeRecord, error)
	Update(id string, record models.IncomeRecord) (*models.IncomeRecord, error)
	Delete(id string) error
}

// ReportServicer computes filtered and aggregated views over the
// enriched ledger.
type ReportServicer interface {
	Transactions(filter Filter) ([]models.EnrichedTransaction, error)
	Summarise(filter Filter) (*Summary, error)
	Breakdown(filter Filter, dim BreakdownDimension, limit int) ([]BreakdownRow, error)
	CategoryTree(filter Filter) ([]CategoryTreeRow, error)
}
