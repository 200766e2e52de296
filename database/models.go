package database

// CaseRow is one raw inadmissible-passenger row as landed in Postgres. The
// analysis-facing fields (inclusion, category, period date) are derived at
// load time, not stored.
type CaseRow struct {
	ID          uint   `gorm:"primaryKey"`
	Airline     string `gorm:"size:8;index:idx_inad_cases_route"`
	LastStop    string `gorm:"size:8;index:idx_inad_cases_route"`
	Year        int    `gorm:"index:idx_inad_cases_period"`
	Month       int    `gorm:"index:idx_inad_cases_period"`
	RefusalCode string `gorm:"size:8"`
}

// TableName overrides the GORM default.
func (CaseRow) TableName() string {
	return "inad_cases"
}

// PaxRow is one raw monthly passenger-volume row as landed in Postgres.
type PaxRow struct {
	ID         uint   `gorm:"primaryKey"`
	Airline    string `gorm:"size:8;index:idx_pax_volumes_route"`
	Airport    string `gorm:"size:8;index:idx_pax_volumes_route"`
	Year       int    `gorm:"index:idx_pax_volumes_period"`
	Month      int    `gorm:"index:idx_pax_volumes_period"`
	Passengers int64
}

// TableName overrides the GORM default.
func (PaxRow) TableName() string {
	return "pax_volumes"
}
