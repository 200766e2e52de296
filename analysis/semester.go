package analysis

import (
	"fmt"
	"sort"
	"time"
)

// Semester is one six-month reporting window: H1 covers January through June,
// H2 July through December.
type Semester struct {
	Year  int
	Half  int
	Start time.Time
	End   time.Time
}

// Label formats the period label used in histories and summaries, e.g.
// "2024 H1".
func (s Semester) Label() string {
	return fmt.Sprintf("%d H%d", s.Year, s.Half)
}

// SemesterFor returns the semester containing the given year and month.
func SemesterFor(year, month int) Semester {
	if month >= 1 && month <= 6 {
		return Semester{
			Year:  year,
			Half:  1,
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
	}
	return Semester{
		Year:  year,
		Half:  2,
		Start: time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// EnumerateSemesters scans case records (regardless of inclusion) and returns
// the distinct reporting periods they span, most recent first.
func EnumerateSemesters(cases []CaseRecord) []Semester {
	seen := make(map[[2]int]Semester)
	for _, c := range cases {
		sem := SemesterFor(c.Year, c.Month)
		seen[[2]int{sem.Year, sem.Half}] = sem
	}

	out := make([]Semester, 0, len(seen))
	for _, sem := range seen {
		out = append(out, sem)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Half > out[j].Half
	})
	return out
}
