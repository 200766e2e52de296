package loader

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"inad-watch/analysis"
)

// Default worksheet names for workbook sources.
const (
	DefaultCaseSheet = "Cases"
	DefaultPaxSheet  = "Passengers"
)

// ExcelCaseSource reads case records from an Excel workbook. The sheet's
// first row must carry the column headers airline, last_stop, year, month and
// refusal_code (any casing).
type ExcelCaseSource struct {
	Path  string
	Sheet string
}

// LoadCases implements CaseSource.
func (s ExcelCaseSource) LoadCases(w Window) ([]analysis.CaseRecord, error) {
	rows, err := readSheet(s.Path, s.Sheet, DefaultCaseSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := headerIndex(rows[0], "airline", "last_stop", "year", "month", "refusal_code")
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}

	var records []analysis.CaseRecord
	for _, row := range rows[1:] {
		year, month, ok := parseYearMonth(cell(row, cols["year"]), cell(row, cols["month"]))
		if !ok {
			continue
		}
		rec := analysis.NewCaseRecord(
			cell(row, cols["airline"]),
			cell(row, cols["last_stop"]),
			year, month,
			cell(row, cols["refusal_code"]),
		)
		if !w.Contains(rec.Date) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExcelPaxSource reads monthly passenger counts from an Excel workbook. The
// sheet's first row must carry the column headers airline, airport, year,
// month and passengers (any casing).
type ExcelPaxSource struct {
	Path  string
	Sheet string
}

// LoadPax implements PaxSource.
func (s ExcelPaxSource) LoadPax(w Window) ([]analysis.PaxRecord, error) {
	rows, err := readSheet(s.Path, s.Sheet, DefaultPaxSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := headerIndex(rows[0], "airline", "airport", "year", "month", "passengers")
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}

	var records []analysis.PaxRecord
	for _, row := range rows[1:] {
		year, month, ok := parseYearMonth(cell(row, cols["year"]), cell(row, cols["month"]))
		if !ok {
			continue
		}
		pax, ok := parsePaxCount(cell(row, cols["passengers"]))
		if !ok {
			continue
		}
		if !w.Contains(monthStart(year, month)) {
			continue
		}
		records = append(records, analysis.PaxRecord{
			Airline: strings.TrimSpace(cell(row, cols["airline"])),
			Airport: strings.TrimSpace(cell(row, cols["airport"])),
			Year:    year,
			Month:   month,
			PAX:     pax,
		})
	}
	return records, nil
}

func readSheet(path, sheet, fallback string) ([][]string, error) {
	if sheet == "" {
		sheet = fallback
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SourceError{Source: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}
	return rows, nil
}

// headerIndex maps required header names (matched case-insensitively) to
// column positions.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parsePaxCount accepts plain integers and spreadsheet-formatted numbers
// ("12,345" or "12345.0").
func parsePaxCount(s string) (int64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	var f float64
	if _, err := fmt.Sscanf(s, "%f", &f); err != nil {
		return 0, false
	}
	return int64(f), true
}

// excelSerialToDate converts an Excel serial day number to a date. Day 0 is
// 1899-12-30.
func excelSerialToDate(serial int) time.Time {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, 0, serial)
}

func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
