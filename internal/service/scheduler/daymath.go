package scheduler

import "time"

// dayStart truncates t to midnight of its calendar day in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// calendarDaysBetween counts whole calendar days from earlier to later in
// loc. Same calendar day yields 0 regardless of the elapsed hours; one
// minute across midnight yields 1. Rounding absorbs DST oddities.
func calendarDaysBetween(later, earlier time.Time, loc *time.Location) int {
	d := dayStart(later, loc).Sub(dayStart(earlier, loc))
	days := d.Hours() / 24
	if days >= 0 {
		return int(days + 0.5)
	}
	return int(days - 0.5)
}

// sameCalendarDay reports whether a and b fall on the same calendar day
// in loc.
func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
