package policy

import "time"

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// NextDueDate advances a reference date by one payment period. Unsupported
// modes return the reference date unchanged, meaning "do not advance".
// Month and year arithmetic follows time.AddDate normalization: adding one
// month to Jan 31 yields Mar 3 (Mar 2 in leap years), not the end of
// February. Tests pin this behavior.
func NextDueDate(reference time.Time, mode PaymentMode) time.Time {
	reference = DateOnly(reference)
	switch mode.PeriodsPerYear() {
	case 12:
		return reference.AddDate(0, 1, 0)
	case 4:
		return reference.AddDate(0, 3, 0)
	case 2:
		return reference.AddDate(0, 6, 0)
	default:
		if mode.IsRecognized() {
			return reference.AddDate(1, 0, 0)
		}
		return reference
	}
}

// NextDueDateFrom parses a date-only string and advances it one period.
// The boolean is false when the reference does not parse to a calendar
// date; callers treat that as "unscheduled" rather than an error.
func NextDueDateFrom(reference string, mode PaymentMode) (time.Time, bool) {
	parsed, ok := ParseDate(reference)
	if !ok {
		return time.Time{}, false
	}
	return NextDueDate(parsed, mode), true
}

// ParseDate parses a date-only string, tolerating a full RFC 3339 timestamp.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return DateOnly(t), true
	}
	return time.Time{}, false
}

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last calendar day of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
