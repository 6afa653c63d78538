package occupancy

import "time"

// minimumAge is the eligibility floor for the responsible guest and every
// companion.
const minimumAge = 18

// ageYears returns whole years elapsed between birth and at, correcting for a
// month/day not yet reached. Someone born exactly minimumAge years before at
// (same month and day) has already turned minimumAge.
func ageYears(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}

// dateOnly truncates t to midnight in loc for date-only comparisons.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
