package database

import (
	"time"

	"gorm.io/gorm"

	"inad-watch/analysis"
	"inad-watch/loader"
)

// RecordRepository loads raw case and passenger rows from Postgres and
// normalizes them into analysis records. It implements loader.CaseSource and
// loader.PaxSource.
type RecordRepository struct {
	db *Database
}

// NewRecordRepository creates a repository over an open connection.
func NewRecordRepository(db *Database) *RecordRepository {
	return &RecordRepository{db: db}
}

// InitSchema creates the raw tables if they do not exist.
func (r *RecordRepository) InitSchema() error {
	if err := r.db.DB().AutoMigrate(&CaseRow{}, &PaxRow{}); err != nil {
		return WrapDBError("init schema", err)
	}
	return nil
}

// LoadCases implements loader.CaseSource. Rows with month values outside
// 1..12 are skipped, matching the file loaders' malformed-row handling.
func (r *RecordRepository) LoadCases(w loader.Window) ([]analysis.CaseRecord, error) {
	var rows []CaseRow
	if err := r.windowQuery(w).Find(&rows).Error; err != nil {
		return nil, WrapDBError("load cases", err)
	}

	records := make([]analysis.CaseRecord, 0, len(rows))
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		rec := analysis.NewCaseRecord(row.Airline, row.LastStop, row.Year, row.Month, row.RefusalCode)
		if !w.Contains(rec.Date) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadPax implements loader.PaxSource.
func (r *RecordRepository) LoadPax(w loader.Window) ([]analysis.PaxRecord, error) {
	var rows []PaxRow
	if err := r.windowQuery(w).Find(&rows).Error; err != nil {
		return nil, WrapDBError("load pax", err)
	}

	records := make([]analysis.PaxRecord, 0, len(rows))
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		rec := analysis.PaxRecord{
			Airline: row.Airline,
			Airport: row.Airport,
			Year:    row.Year,
			Month:   row.Month,
			PAX:     row.Passengers,
		}
		if !w.Contains(monthStart(row.Year, row.Month)) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// windowQuery narrows the scan to the window's year/month span. The exact
// date check still happens in Go after normalization; this only keeps the
// database from shipping rows that cannot possibly qualify.
func (r *RecordRepository) windowQuery(w loader.Window) *gorm.DB {
	q := r.db.DB().Session(&gorm.Session{})
	if !w.Start.IsZero() {
		q = q.Where("year * 100 + month >= ?", w.Start.Year()*100+int(w.Start.Month()))
	}
	if !w.End.IsZero() {
		q = q.Where("year * 100 + month <= ?", w.End.Year()*100+int(w.End.Month()))
	}
	return q
}

func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
