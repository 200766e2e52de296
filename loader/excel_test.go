package loader

import (
	"testing"
	"time"
)

func TestHeaderIndex(t *testing.T) {
	header := []string{" Airline ", "LAST_STOP", "year", "Month", "refusal_code"}
	cols, err := headerIndex(header, "airline", "last_stop", "year", "month", "refusal_code")
	if err != nil {
		t.Fatal(err)
	}
	if cols["airline"] != 0 || cols["last_stop"] != 1 || cols["refusal_code"] != 4 {
		t.Errorf("unexpected column mapping: %v", cols)
	}

	if _, err := headerIndex(header, "passengers"); err == nil {
		t.Error("expected an error for a missing column")
	}
}

func TestCellOutOfRange(t *testing.T) {
	row := []string{"LX", "PRN"}
	if got := cell(row, 1); got != "PRN" {
		t.Errorf("expected PRN, got %q", got)
	}
	// Trailing empty cells are trimmed from workbook rows.
	if got := cell(row, 5); got != "" {
		t.Errorf("expected empty string past the row end, got %q", got)
	}
}

func TestParsePaxCount(t *testing.T) {
	tests := []struct {
		in       string
		expected int64
		ok       bool
	}{
		{"12345", 12345, true},
		{"12,345", 12345, true},
		{"12345.0", 12345, true},
		{" 500 ", 500, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePaxCount(tt.in)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("parsePaxCount(%q) = %d, %v; expected %d, %v", tt.in, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestExcelSerialToDate(t *testing.T) {
	tests := []struct {
		serial   int
		expected time.Time
	}{
		{45292, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{45352, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{1, time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := excelSerialToDate(tt.serial); !got.Equal(tt.expected) {
			t.Errorf("serial %d = %v, expected %v", tt.serial, got, tt.expected)
		}
	}
}

func TestExcelSourceMissingFile(t *testing.T) {
	if _, err := (ExcelCaseSource{Path: "/nonexistent/data.xlsx"}).LoadCases(Window{}); err == nil {
		t.Error("expected an error for a missing workbook")
	}
	if _, err := (ExcelPaxSource{Path: "/nonexistent/data.xlsx"}).LoadPax(Window{}); err == nil {
		t.Error("expected an error for a missing workbook")
	}
}
