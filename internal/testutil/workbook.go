// Package testutil provides test helpers for building fixture workbooks,
// sample records, and making assertions.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"spendboard/internal/models"
)

// spendingSchema mirrors the persisted column order of the Spending sheet.
var spendingSchema = []interface{}{
	"Item", "Cost", "Quantity", "Measure", "Location", "Shop",
	"Details", "Tag", "Date", "Receipt Ref", "Receipt", "transactionId",
}

// CreateSpendingWorkbook writes a spending workbook into a temp dir with
// the default reference sheets and the given records, and returns its
// path. The reference sheets deliberately contain one item with two base
// rows (Chips) and one item whose chain is broken (Orphan), so joins can
// be tested against defective reference data.
func CreateSpendingWorkbook(t *testing.T, records []models.SpendingRecord) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Spending sheet: header on the first row.
	if err := f.SetSheetName("Sheet1", "Spending"); err != nil {
		t.Fatalf("failed to name Spending sheet: %v", err)
	}
	setRow(t, f, "Spending", 1, spendingSchema)
	for i, r := range records {
		quantity := interface{}("")
		if !r.Quantity.IsZero() {
			quantity = r.Quantity.InexactFloat64()
		}
		setRow(t, f, "Spending", i+2, []interface{}{
			r.Item, r.Cost.InexactFloat64(), quantity, r.Measure, r.Location,
			r.Shop, r.Details, r.Tag, r.Date.Format("2006-01-02"),
			r.ReceiptRef, r.Receipt, r.TransactionID,
		})
	}

	// Reference sheets carry a title row above the header, like the real
	// workbook; the Base Table carries two.
	addSheet(t, f, "Top_Table", 2, []interface{}{"Sub Category", "Category"}, [][]interface{}{
		{"Groceries", "Week by Week"},
		{"Fun", "Wants"},
		{"Miscellaneous", "Wants"},
	})
	addSheet(t, f, "Middle Table", 2, []interface{}{"Sub Sub Category", "Sub Category"}, [][]interface{}{
		{"Fruit", "Groceries"},
		{"Alcohol", "Fun"},
		{"Odds and Ends", "Miscellaneous"},
		{"Unlinked", "No Such Sub Category"},
	})
	addSheet(t, f, "Base Table", 3, []interface{}{"All Items", "Sub Sub Category"}, [][]interface{}{
		{"Apples", "Fruit"},
		{"Beer", "Alcohol"},
		{"Stuff", "Odds and Ends"},
		{"Chips", "Fruit"},
		{"Chips", "Alcohol"},
		{"Orphan", "No Such Sub Sub Category"},
	})
	addSheet(t, f, "Location", 2,
		[]interface{}{"Location", "Description", "State", "Country", "Latitude", "Longitude"},
		[][]interface{}{
			{"Sydney", "Harbour city", "NSW", "Australia", -33.8688, 151.2093},
			{"Melbourne", "", "VIC", "Australia", "", ""},
		})

	path := filepath.Join(t.TempDir(), "spending.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save spending workbook: %v", err)
	}
	return path
}

// CreateIncomeWorkbook writes an income workbook with the given raw cell
// rows and returns its path. Rows are written as-is so tests can control
// blank cells.
func CreateIncomeWorkbook(t *testing.T, incomeRows, deductionRows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "Income"); err != nil {
		t.Fatalf("failed to name Income sheet: %v", err)
	}
	setRow(t, f, "Income", 1, []interface{}{
		"Gross Income", "Salary Sacrifice", "Tax", "Income", "Date", "Employer",
		"Description", "Taxable", "Received in bank account", "Comment", "Id",
	})
	for i, row := range incomeRows {
		setRow(t, f, "Income", i+2, row)
	}

	addSheet(t, f, "Deductions", 1, []interface{}{"Item", "Cost", "Date", "Description"}, deductionRows)

	path := filepath.Join(t.TempDir(), "income.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save income workbook: %v", err)
	}
	return path
}

// addSheet creates a sheet whose header sits on headerRow (1-based),
// padding the rows above it with a title placeholder.
func addSheet(t *testing.T, f *excelize.File, name string, headerRow int, headers []interface{}, rows [][]interface{}) {
	t.Helper()

	if _, err := f.NewSheet(name); err != nil {
		t.Fatalf("failed to create sheet %s: %v", name, err)
	}
	for i := 1; i < headerRow; i++ {
		setRow(t, f, name, i, []interface{}{name + " title"})
	}
	setRow(t, f, name, headerRow, headers)
	for i, row := range rows {
		setRow(t, f, name, headerRow+1+i, row)
	}
}

func setRow(t *testing.T, f *excelize.File, sheet string, row int, values []interface{}) {
	t.Helper()

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		t.Fatalf("failed to address row %d: %v", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		t.Fatalf("failed to write row %d of %s: %v", row, sheet, err)
	}
}
