package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"inad-watch/analysis"
)

// csvCaseRow mirrors one raw case CSV row. Year and month stay strings so a
// malformed row skips instead of failing the whole decode.
type csvCaseRow struct {
	Airline     string `csv:"airline"`
	LastStop    string `csv:"last_stop"`
	Year        string `csv:"year"`
	Month       string `csv:"month"`
	RefusalCode string `csv:"refusal_code"`
}

// csvPaxRow mirrors one raw passenger-volume CSV row.
type csvPaxRow struct {
	Airline    string `csv:"airline"`
	Airport    string `csv:"airport"`
	Year       string `csv:"year"`
	Month      string `csv:"month"`
	Passengers string `csv:"passengers"`
}

// CSVCaseSource reads case records from a header-mapped CSV file.
type CSVCaseSource struct {
	Path string
}

// LoadCases implements CaseSource.
func (s CSVCaseSource) LoadCases(w Window) ([]analysis.CaseRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	defer f.Close()

	records, err := decodeCaseCSV(f, w)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	return records, nil
}

func decodeCaseCSV(r io.Reader, w Window) ([]analysis.CaseRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("create CSV decoder: %w", err)
	}

	var records []analysis.CaseRecord
	for {
		var row csvCaseRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode case row: %w", err)
		}

		year, month, ok := parseYearMonth(row.Year, row.Month)
		if !ok {
			continue
		}
		rec := analysis.NewCaseRecord(row.Airline, row.LastStop, year, month, row.RefusalCode)
		if !w.Contains(rec.Date) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// CSVPaxSource reads monthly passenger counts from a header-mapped CSV file.
type CSVPaxSource struct {
	Path string
}

// LoadPax implements PaxSource.
func (s CSVPaxSource) LoadPax(w Window) ([]analysis.PaxRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	defer f.Close()

	records, err := decodePaxCSV(f, w)
	if err != nil {
		return nil, &SourceError{Source: s.Path, Err: err}
	}
	return records, nil
}

func decodePaxCSV(r io.Reader, w Window) ([]analysis.PaxRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("create CSV decoder: %w", err)
	}

	var records []analysis.PaxRecord
	for {
		var row csvPaxRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode pax row: %w", err)
		}

		year, month, ok := parseYearMonth(row.Year, row.Month)
		if !ok {
			continue
		}
		pax, err := strconv.ParseInt(strings.TrimSpace(row.Passengers), 10, 64)
		if err != nil {
			continue
		}
		rec := analysis.PaxRecord{
			Airline: strings.TrimSpace(row.Airline),
			Airport: strings.TrimSpace(row.Airport),
			Year:    year,
			Month:   month,
			PAX:     pax,
		}
		if !w.Contains(monthStart(year, month)) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseYearMonth validates the date fields of a raw row. Month values above
// 1000 are Excel serial dates exported as numbers and are converted back.
func parseYearMonth(yearField, monthField string) (int, int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(yearField))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthField))
	if err != nil {
		return 0, 0, false
	}
	if month > 1000 {
		d := excelSerialToDate(month)
		year, month = d.Year(), int(d.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
