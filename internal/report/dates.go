package report

import "time"

// DateLayout is the display format for report dates
const DateLayout = "2006-01-02"

// AddMonths shifts a date by whole calendar months, landing on the same
// day-of-month when it exists and clamping to the last day of the target
// month otherwise (Mar 31 - 1 month = Feb 28/29). time.Time.AddDate
// normalizes overflow into the following month, which is the wrong
// behavior for licence terms, hence the manual clamp.
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// boundaryDate is the invoice date whose licence, given the product's
// licence length, expires exactly at today + checkpoint days.
func boundaryDate(today time.Time, checkpoint, licenceMonths int) time.Time {
	return AddMonths(today.AddDate(0, 0, checkpoint), -licenceMonths)
}

// dateOnly truncates a timestamp to midnight in its own location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
