package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts covers the formats a date cell can come back as: the ISO
// form this application writes, spreadsheet display formats, and full
// timestamps from imported data.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",
	"1/2/06 15:04",
	"1/2/2006",
	"02/01/2006",
}

// parseDate parses a cell value into a time. Blank or unparseable cells
// yield the zero time; bad reference data degrades rather than aborting
// a load.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatDate renders a date cell as ISO YYYY-MM-DD; the zero time maps
// back to a blank cell.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseDecimal parses a monetary or quantity cell. Currency symbols and
// thousands separators are tolerated; blank or unparseable cells yield zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numberCell renders an optional numeric cell for writing; zero maps
// back to a blank cell so derived-when-blank semantics survive a rewrite.
func numberCell(d decimal.Decimal) interface{} {
	if d.IsZero() {
		return ""
	}
	return d.InexactFloat64()
}

// parseFloat parses an optional numeric cell, nil when blank or invalid.
func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseBool interprets the truthy spellings spreadsheets produce.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
