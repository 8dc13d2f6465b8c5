package store

import (
	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/workbook"
)

// Sheet names in the income workbook. Both sheets carry their headers on
// the first row.
const (
	incomeSheet     = "Income"
	deductionsSheet = "Deductions"

	incomeHeaderRow = 0
)

// incomeSchema is the persisted column order of the Income sheet. The Id
// column is appended by the first rewrite of workbooks that predate it.
var incomeSchema = []string{
	"Gross Income",
	"Salary Sacrifice",
	"Tax",
	"Income",
	"Date",
	"Employer",
	"Description",
	"Taxable",
	"Received in bank account",
	"Comment",
	"Id",
}

// IncomeStore reads and rewrites the income workbook.
type IncomeStore struct {
	path string
}

// NewIncomeStore creates a store for the workbook at path.
func NewIncomeStore(path string) *IncomeStore {
	return &IncomeStore{path: path}
}

// Path returns the backing workbook path. Used as a cache key component.
func (s *IncomeStore) Path() string { return s.path }

// IncomeRows loads the raw Income sheet. Derived fields (FinancialYear,
// TaxableIncome, defaulted Sacrifice/Tax) are computed by the income
// service, not here.
func (s *IncomeStore) IncomeRows() ([]models.IncomeRecord, error) {
	sheet, err := readSheet(s.path, incomeSheet, incomeHeaderRow)
	if err != nil {
		return nil, err
	}

	records := make([]models.IncomeRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		records = append(records, models.IncomeRecord{
			ID:              row["Id"],
			GrossIncome:     parseDecimal(row["Gross Income"]),
			SalarySacrifice: parseDecimal(row["Salary Sacrifice"]),
			Tax:             parseDecimal(row["Tax"]),
			Income:          parseDecimal(row["Income"]),
			Date:            parseDate(row["Date"]),
			Employer:        row["Employer"],
			Description:     row["Description"],
			Taxable:         row["Taxable"],
			ReceivedInBank:  parseBool(row["Received in bank account"]),
			Comment:         row["Comment"],
		})
	}
	return records, nil
}

// DeductionRows loads the raw Deductions sheet.
func (s *IncomeStore) DeductionRows() ([]models.DeductionRecord, error) {
	sheet, err := readSheet(s.path, deductionsSheet, incomeHeaderRow)
	if err != nil {
		return nil, err
	}

	records := make([]models.DeductionRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		records = append(records, models.DeductionRecord{
			Item:        row["Item"],
			Cost:        parseDecimal(row["Cost"]),
			Date:        parseDate(row["Date"]),
			Description: row["Description"],
		})
	}
	return records, nil
}

// Replace rewrites the Income sheet with the given records, preserving
// the Deductions sheet. Dates are written as ISO YYYY-MM-DD; zero
// Sacrifice/Tax/Income cells are written blank so the load-time defaults
// and the derived-Income rule keep applying.
func (s *IncomeStore) Replace(records []models.IncomeRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.GrossIncome.InexactFloat64(),
			numberCell(r.SalarySacrifice),
			numberCell(r.Tax),
			numberCell(r.Income),
			formatDate(r.Date),
			r.Employer,
			r.Description,
			r.Taxable,
			r.ReceivedInBank,
			r.Comment,
			r.ID,
		})
	}

	if err := workbook.ReplaceSheet(s.path, incomeSheet, incomeSchema, rows); err != nil {
		return apperrors.Wrap(apperrors.ErrWorkbookUnreadable, err)
	}
	return nil
}
