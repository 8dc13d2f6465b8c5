package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendboard/internal/cache"
	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/store"
	"spendboard/internal/uuid"
)

const (
	incomeCachePrefix     = "income"
	deductionsCachePrefix = "deductions"
)

// FinancialYear returns the July-to-June accounting year label for a
// date: July or later falls in "FY year/year+1", otherwise
// "FY year-1/year". The zero time yields an empty label.
func FinancialYear(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	year := date.Year()
	if date.Month() >= time.July {
		return fmt.Sprintf("FY %d/%d", year, year+1)
	}
	return fmt.Sprintf("FY %d/%d", year-1, year)
}

// TaxableIncome computes the taxable figure for an income record:
// gross minus salary sacrifice when taxable, gross plus the attached
// franking credit for franked dividends, zero otherwise.
func TaxableIncome(record models.IncomeRecord) decimal.Decimal {
	switch record.Taxable {
	case models.TaxableYes:
		return record.GrossIncome.Sub(record.SalarySacrifice)
	case models.TaxableFrankedDividends:
		return record.GrossIncome.Add(record.Tax)
	default:
		return decimal.Zero
	}
}

// FinancialYearSummary aggregates income figures over one financial year.
type FinancialYearSummary struct {
	FinancialYear string          `json:"financial_year"`
	GrossIncome   decimal.Decimal `json:"gross_income"`
	Tax           decimal.Decimal `json:"tax"`
	Income        decimal.Decimal `json:"income"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
}

// incomeService loads income and deduction records and derives their
// financial-year and taxable-income fields.
type incomeService struct {
	store *store.IncomeStore
	cache *cache.Cache
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(st *store.IncomeStore, c *cache.Cache) IncomeServicer {
	return &incomeService{store: st, cache: c}
}

// IncomeRecords returns the income ledger with derived fields populated.
// Missing salary sacrifice and tax cells load as zero, which is the
// required default for the derivations.
func (s *incomeService) IncomeRecords() ([]models.IncomeRecord, error) {
	key := cache.Key(incomeCachePrefix, s.store.Path())
	value, err := s.cache.GetOrLoad(key, func() (interface{}, error) {
		records, err := s.store.IncomeRows()
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].FinancialYear = FinancialYear(records[i].Date)
			records[i].TaxableIncome = TaxableIncome(records[i])
			if records[i].Income.IsZero() {
				records[i].Income = records[i].GrossIncome.
					Sub(records[i].SalarySacrifice).
					Sub(records[i].Tax)
			}
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.IncomeRecord), nil
}

// Deductions returns the deductions ledger with financial years derived.
func (s *incomeService) Deductions() ([]models.DeductionRecord, error) {
	key := cache.Key(deductionsCachePrefix, s.store.Path())
	value, err := s.cache.GetOrLoad(key, func() (interface{}, error) {
		records, err := s.store.DeductionRows()
		if err != nil {
			return nil, err
		}
		for i := range records {
			records[i].FinancialYear = FinancialYear(records[i].Date)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]models.DeductionRecord), nil
}

// Insert validates and appends an income record. A blank id gets a
// generated UUID so the row stays addressable for edits and deletes.
func (s *incomeService) Insert(record models.IncomeRecord) (*models.IncomeRecord, error) {
	if err := validateIncome(record); err != nil {
		return nil, err
	}
	if record.ID == "" {
		record.ID = uuid.New()
	}

	records, err := s.store.IncomeRows()
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.persist(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces the income record with the given id. The id is
// preserved verbatim regardless of what the replacement carries.
func (s *incomeService) Update(id string, record models.IncomeRecord) (*models.IncomeRecord, error) {
	if err := validateIncome(record); err != nil {
		return nil, err
	}

	records, err := s.store.IncomeRows()
	if err != nil {
		return nil, err
	}
	index := findIncomeByID(records, id)
	if index < 0 {
		return nil, apperrors.ErrRecordNotFound
	}
	record.ID = id
	records[index] = record

	if err := s.persist(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the income record with the given id.
func (s *incomeService) Delete(id string) error {
	records, err := s.store.IncomeRows()
	if err != nil {
		return err
	}
	index := findIncomeByID(records, id)
	if index < 0 {
		return apperrors.ErrRecordNotFound
	}
	records = append(records[:index], records[index+1:]...)

	return s.persist(records)
}

// persist rewrites the whole Income sheet sorted by date, then drops the
// cached income pipeline so the next read observes the write. Rows
// without an id are assigned one here.
func (s *incomeService) persist(records []models.IncomeRecord) error {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.New()
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	if err := s.store.Replace(records); err != nil {
		return err
	}
	s.cache.Invalidate(incomeCachePrefix)
	return nil
}

func validateIncome(record models.IncomeRecord) error {
	if record.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if record.GrossIncome.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "gross income must not be negative")
	}
	switch record.Taxable {
	case models.TaxableNo, models.TaxableYes, models.TaxableFrankedDividends:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown taxable classification: "+record.Taxable)
	}
	return nil
}

func findIncomeByID(records []models.IncomeRecord, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// IncomeSummary rolls the income ledger up per financial year, sorted by
// year label. Records without a date (and so without a year) are grouped
// under the empty label and sort first.
func (s *incomeService) IncomeSummary() ([]FinancialYearSummary, error) {
	records, err := s.IncomeRecords()
	if err != nil {
		return nil, err
	}

	byYear := make(map[string]*FinancialYearSummary)
	for _, r := range records {
		summary, ok := byYear[r.FinancialYear]
		if !ok {
			summary = &FinancialYearSummary{FinancialYear: r.FinancialYear}
			byYear[r.FinancialYear] = summary
		}
		summary.GrossIncome = summary.GrossIncome.Add(r.GrossIncome)
		summary.Tax = summary.Tax.Add(r.Tax)
		summary.Income = summary.Income.Add(r.Income)
		summary.TaxableIncome = summary.TaxableIncome.Add(r.TaxableIncome)
	}

	summaries := make([]FinancialYearSummary, 0, len(byYear))
	for _, s := range byYear {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].FinancialYear < summaries[j].FinancialYear
	})
	return summaries, nil
}
