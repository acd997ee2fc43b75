package performance

import "time"

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the calendar month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// LastDay returns the final calendar day of the period at midnight UTC.
func (p Period) LastDay() time.Time {
	firstOfNext := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// AddMonths shifts the period by n calendar months, n may be negative.
func (p Period) AddMonths(n int) Period {
	shifted := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Period{Year: shifted.Year(), Month: shifted.Month()}
}
