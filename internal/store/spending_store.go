// Package store provides typed access to the spending and income
// workbooks. It is the only package that knows sheet names, header
// offsets, and column titles; everything above it works with models.
package store

import (
	"errors"

	"github.com/xuri/excelize/v2"

	apperrors "spendboard/internal/errors"
	"spendboard/internal/models"
	"spendboard/internal/workbook"
)

// Sheet names and header-row offsets in the spending workbook. The
// reference sheets carry title rows above their headers, matching the
// layout of the original workbook.
const (
	spendingSheet = "Spending"
	topSheet      = "Top_Table"
	middleSheet   = "Middle Table"
	baseSheet     = "Base Table"
	locationSheet = "Location"

	spendingHeaderRow  = 0
	referenceHeaderRow = 1
	baseHeaderRow      = 2
)

// spendingSchema is the persisted column order of the Spending sheet.
var spendingSchema = []string{
	"Item",
	"Cost",
	"Quantity",
	"Measure",
	"Location",
	"Shop",
	"Details",
	"Tag",
	"Date",
	"Receipt Ref",
	"Receipt",
	"transactionId",
}

// ReferenceTables holds the raw category hierarchy and location tables.
type ReferenceTables struct {
	Base      []models.BaseRow
	Middle    []models.MiddleRow
	Top       []models.TopRow
	Locations []models.LocationInfo
}

// SpendingStore reads and rewrites the spending workbook.
type SpendingStore struct {
	path string
}

// NewSpendingStore creates a store for the workbook at path.
func NewSpendingStore(path string) *SpendingStore {
	return &SpendingStore{path: path}
}

// Path returns the backing workbook path. Used as a cache key component.
func (s *SpendingStore) Path() string { return s.path }

// Records loads every row of the Spending sheet.
func (s *SpendingStore) Records() ([]models.SpendingRecord, error) {
	sheet, err := readSheet(s.path, spendingSheet, spendingHeaderRow)
	if err != nil {
		return nil, err
	}

	records := make([]models.SpendingRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		records = append(records, models.SpendingRecord{
			Item:          row["Item"],
			Cost:          parseDecimal(row["Cost"]),
			Quantity:      parseDecimal(row["Quantity"]),
			Measure:       row["Measure"],
			Location:      row["Location"],
			Shop:          row["Shop"],
			Details:       row["Details"],
			Tag:           row["Tag"],
			Date:          parseDate(row["Date"]),
			ReceiptRef:    row["Receipt Ref"],
			Receipt:       row["Receipt"],
			TransactionID: row["transactionId"],
		})
	}
	return records, nil
}

// ReferenceTables loads the Base, Middle, Top and Location sheets.
// The Base sheet's "All Items" column is canonicalised to Item here.
func (s *SpendingStore) ReferenceTables() (*ReferenceTables, error) {
	tables := &ReferenceTables{}

	base, err := readSheet(s.path, baseSheet, baseHeaderRow)
	if err != nil {
		return nil, err
	}
	for _, row := range base.Rows {
		tables.Base = append(tables.Base, models.BaseRow{
			Item:           row["All Items"],
			SubSubCategory: row["Sub Sub Category"],
		})
	}

	middle, err := readSheet(s.path, middleSheet, referenceHeaderRow)
	if err != nil {
		return nil, err
	}
	for _, row := range middle.Rows {
		tables.Middle = append(tables.Middle, models.MiddleRow{
			SubSubCategory: row["Sub Sub Category"],
			SubCategory:    row["Sub Category"],
		})
	}

	top, err := readSheet(s.path, topSheet, referenceHeaderRow)
	if err != nil {
		return nil, err
	}
	for _, row := range top.Rows {
		tables.Top = append(tables.Top, models.TopRow{
			SubCategory: row["Sub Category"],
			Category:    row["Category"],
		})
	}

	locations, err := readSheet(s.path, locationSheet, referenceHeaderRow)
	if err != nil {
		return nil, err
	}
	for _, row := range locations.Rows {
		tables.Locations = append(tables.Locations, models.LocationInfo{
			Name:        row["Location"],
			Description: row["Description"],
			State:       row["State"],
			Country:     row["Country"],
			Latitude:    parseFloat(row["Latitude"]),
			Longitude:   parseFloat(row["Longitude"]),
		})
	}

	return tables, nil
}

// Replace rewrites the Spending sheet with the given records, preserving
// every other sheet. Dates are written as ISO YYYY-MM-DD. The caller is
// responsible for ordering; rows are written as given.
func (s *SpendingStore) Replace(records []models.SpendingRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Item,
			r.Cost.InexactFloat64(),
			numberCell(r.Quantity),
			r.Measure,
			r.Location,
			r.Shop,
			r.Details,
			r.Tag,
			formatDate(r.Date),
			r.ReceiptRef,
			r.Receipt,
			r.TransactionID,
		})
	}

	if err := workbook.ReplaceSheet(s.path, spendingSheet, spendingSchema, rows); err != nil {
		return apperrors.Wrap(apperrors.ErrWorkbookUnreadable, err)
	}
	return nil
}

// readSheet wraps workbook.ReadSheet and maps failures onto the
// application error kinds: a missing sheet and an unreadable workbook are
// surfaced distinctly.
func readSheet(path, sheet string, headerRow int) (*workbook.Sheet, error) {
	result, err := workbook.ReadSheet(path, sheet, headerRow)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return nil, apperrors.Wrap(apperrors.ErrSheetNotFound, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrWorkbookUnreadable, err)
	}
	return result, nil
}
